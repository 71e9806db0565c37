// internal/services/seller_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/javajoker/marketflow-backend/internal/models"
)

const (
	DefaultDraftCategory = "Design Assets"
	DefaultDraftPrice    = "49.00"

	copywriterPrompt = "You are an expert copywriter for digital marketplaces. Keep the description concise but persuasive (max 100 words)."
)

var (
	ErrDraftTitleRequired  = errors.New("draft title is required")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrInvalidPrice        = errors.New("price must be a non-negative number")
	ErrGalleryImageMissing = errors.New("gallery image not found")
)

type UpdateDraftRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Price       *string `json:"price,omitempty"`
}

// DraftState is the Add Product form of one workspace. Drafts are never published.
type DraftState struct {
	mu         sync.Mutex
	draft      models.ProductDraft
	categories []string
}

func NewDraftState(categories []string) *DraftState {
	return &DraftState{
		draft: models.ProductDraft{
			Category: DefaultDraftCategory,
			Price:    DefaultDraftPrice,
			Gallery:  []string{},
		},
		categories: categories,
	}
}

func (d *DraftState) Get() models.ProductDraft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

func (d *DraftState) Update(req UpdateDraftRequest) (models.ProductDraft, error) {
	if req.Category != nil && !d.knownCategory(*req.Category) {
		return models.ProductDraft{}, fmt.Errorf("%w: %s", ErrUnknownCategory, *req.Category)
	}
	if req.Price != nil {
		price, err := strconv.ParseFloat(*req.Price, 64)
		if err != nil || price < 0 {
			return models.ProductDraft{}, ErrInvalidPrice
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if req.Title != nil {
		d.draft.Title = *req.Title
	}
	if req.Description != nil {
		d.draft.Description = *req.Description
	}
	if req.Category != nil {
		d.draft.Category = *req.Category
	}
	if req.Price != nil {
		d.draft.Price = *req.Price
	}
	return d.snapshot(), nil
}

func (d *DraftState) SetPrimaryImage(dataURL string) models.ProductDraft {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.draft.PrimaryImage = dataURL
	return d.snapshot()
}

func (d *DraftState) AddGalleryImages(dataURLs ...string) models.ProductDraft {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.draft.Gallery = append(d.draft.Gallery, dataURLs...)
	return d.snapshot()
}

func (d *DraftState) RemoveGalleryImage(index int) (models.ProductDraft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.draft.Gallery) {
		return models.ProductDraft{}, ErrGalleryImageMissing
	}
	d.draft.Gallery = append(d.draft.Gallery[:index], d.draft.Gallery[index+1:]...)
	return d.snapshot(), nil
}

func (d *DraftState) setDescription(description string) models.ProductDraft {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.draft.Description = description
	return d.snapshot()
}

func (d *DraftState) knownCategory(category string) bool {
	for _, c := range d.categories {
		if c == category {
			return true
		}
	}
	return false
}

func (d *DraftState) snapshot() models.ProductDraft {
	out := d.draft
	out.Gallery = make([]string, len(d.draft.Gallery))
	copy(out.Gallery, d.draft.Gallery)
	return out
}

type SellerService struct {
	chatService *ChatService
	dashboard   models.SellerDashboard
}

func NewSellerService(chatService *ChatService, dashboard models.SellerDashboard) *SellerService {
	return &SellerService{
		chatService: chatService,
		dashboard:   dashboard,
	}
}

func (s *SellerService) Dashboard() models.SellerDashboard {
	return s.dashboard
}

// DescribeDraft asks the assistant for a product description based on the
// draft's title and category. On failure the draft is left unchanged.
func (s *SellerService) DescribeDraft(ctx context.Context, draft *DraftState) (models.ProductDraft, error) {
	current := draft.Get()
	if current.Title == "" {
		return models.ProductDraft{}, ErrDraftTitleRequired
	}

	prompt := fmt.Sprintf(`Generate a compelling, professional marketplace description for a digital product titled "%s" in the category "%s".`, current.Title, current.Category)
	text, err := s.chatService.Generate(ctx, copywriterPrompt, prompt)
	if err != nil {
		return models.ProductDraft{}, err
	}
	return draft.setDescription(text), nil
}

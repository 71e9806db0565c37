// internal/handlers/seller.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/services"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

type SellerHandler struct {
	sellerService *services.SellerService
	mediaService  *services.MediaService
}

func NewSellerHandler(sellerService *services.SellerService, mediaService *services.MediaService) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		mediaService:  mediaService,
	}
}

// GET /api/seller/dashboard
func (h *SellerHandler) GetDashboard(c *gin.Context) {
	utils.SuccessResponse(c, h.sellerService.Dashboard())
}

// GET /api/seller/onboarding
func (h *SellerHandler) GetOnboarding(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, ws.Onboarding.Progress())
}

// POST /api/seller/onboarding/connect
func (h *SellerHandler) ConnectPayments(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	utils.AcceptedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyOnboardingStarted),
		"onboarding": ws.Onboarding.Connect(),
	})
}

// GET /api/seller/draft
func (h *SellerHandler) GetDraft(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, ws.Draft.Get())
}

// PUT /api/seller/draft
func (h *SellerHandler) UpdateDraft(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req services.UpdateDraftRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := ws.Draft.Update(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownCategory):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCategoryNotRecognized), err.Error())
		case errors.Is(err, services.ErrInvalidPrice):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDraftPriceInvalid), nil)
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDraftUpdated),
		"draft":   draft,
	})
}

// POST /api/seller/draft/primary-image
func (h *SellerHandler) UploadPrimaryImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	options := h.mediaService.GetDefaultUploadOptions("products")
	encoded, err := h.mediaService.EncodeUpload(fileHeader, options)
	if err != nil {
		mediaErrorResponse(c, err, options)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"image": encoded,
		"draft": ws.Draft.SetPrimaryImage(encoded.DataURL),
	})
}

// POST /api/seller/draft/gallery
func (h *SellerHandler) UploadGallery(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), "no images uploaded")
		return
	}

	options := h.mediaService.GetDefaultUploadOptions("products")
	encoded, err := h.mediaService.EncodeUploads(c.Request.Context(), files, options)
	if err != nil {
		mediaErrorResponse(c, err, options)
		return
	}

	dataURLs := make([]string, 0, len(encoded))
	for _, image := range encoded {
		dataURLs = append(dataURLs, image.DataURL)
	}

	utils.SuccessResponse(c, gin.H{
		"images": encoded,
		"draft":  ws.Draft.AddGalleryImages(dataURLs...),
	})
}

// DELETE /api/seller/draft/gallery/:index
func (h *SellerHandler) RemoveGalleryImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "index"), nil)
		return
	}

	draft, err := ws.Draft.RemoveGalleryImage(index)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyDraftImageNotFound)
		return
	}

	utils.SuccessResponse(c, draft)
}

// POST /api/seller/draft/describe
func (h *SellerHandler) DescribeDraft(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	draft, err := h.sellerService.DescribeDraft(c.Request.Context(), ws.Draft)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDraftTitleRequired):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDraftTitleRequired), nil)
		case errors.Is(err, services.ErrChatNotConfigured):
			utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyAssistantUnavailable))
		default:
			utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyDraftDescribeFailed))
		}
		return
	}

	utils.SuccessResponse(c, draft)
}

// internal/services/catalog_service.go
package services

import (
	"strings"

	"github.com/javajoker/marketflow-backend/internal/database"
	"github.com/javajoker/marketflow-backend/internal/models"
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
)

type ProductFilter struct {
	Query     string  `json:"query"`
	Category  string  `json:"category"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	MinRating float64 `json:"min_rating"`
}

func DefaultProductFilter() ProductFilter {
	return ProductFilter{
		Category: database.CategoryAll,
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
	}
}

// PurchaseChecker reports purchase membership for product views.
type PurchaseChecker interface {
	HasPurchased(productID string) bool
}

// CatalogService owns the fixed product list. Products are never mutated.
type CatalogService struct {
	products   []models.Product
	index      map[string]int
	categories []string
}

func NewCatalogService(products []models.Product, categories []string) *CatalogService {
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}
	return &CatalogService{
		products:   products,
		index:      index,
		categories: categories,
	}
}

func (s *CatalogService) Categories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *CatalogService) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *CatalogService) Product(id string) (models.Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Product{}, false
	}
	return s.products[i], true
}

func (s *CatalogService) IsKnownCategory(category string) bool {
	for _, c := range s.categories {
		if c == category {
			return true
		}
	}
	return false
}

// Search filters the catalog against the live ledger and decorates the
// results with aggregates and purchase membership.
func (s *CatalogService) Search(filter ProductFilter, ratings RatingSource, purchases PurchaseChecker) []models.ProductView {
	if !s.IsKnownCategory(filter.Category) {
		return []models.ProductView{}
	}

	matched := FilterProducts(s.products, ratings, filter)
	views := make([]models.ProductView, 0, len(matched))
	for _, p := range matched {
		views = append(views, BuildProductView(p, ratings, purchases))
	}
	return views
}

func BuildProductView(p models.Product, ratings RatingSource, purchases PurchaseChecker) models.ProductView {
	count := ratings.ReviewCount(p.ID)
	if count == 0 {
		count = p.Reviews
	}
	return models.ProductView{
		Product:       p,
		AverageRating: ratings.AverageRating(p.ID, p.Rating),
		ReviewCount:   count,
		Purchased:     purchases != nil && purchases.HasPurchased(p.ID),
	}
}

// FilterProducts returns the products satisfying every predicate of filter.
// The rating predicate uses the live ledger average, falling back to the
// product's base rating when it has no reviews. Nothing is cached.
func FilterProducts(products []models.Product, ratings RatingSource, filter ProductFilter) []models.Product {
	query := strings.ToLower(filter.Query)

	result := []models.Product{}
	for _, p := range products {
		if !matchesQuery(p, query) {
			continue
		}
		if filter.Category != database.CategoryAll && p.Category != filter.Category {
			continue
		}
		if p.Price < filter.MinPrice || p.Price > filter.MaxPrice {
			continue
		}
		if ratings.AverageRating(p.ID, p.Rating) < filter.MinRating {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchesQuery(p models.Product, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery)
}

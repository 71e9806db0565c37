// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/services"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GET /api/catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, h.catalogService.Categories())
}

// GET /api/catalog/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	filter := services.DefaultProductFilter()
	filter.Query = c.Query("q")

	if category := c.Query("category"); category != "" {
		filter.Category = category
	}

	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		if minPrice, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			filter.MinPrice = minPrice
		}
	}

	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			filter.MaxPrice = maxPrice
		}
	}

	if minRatingStr := c.Query("min_rating"); minRatingStr != "" {
		if minRating, err := strconv.ParseFloat(minRatingStr, 64); err == nil {
			filter.MinRating = minRating
		}
	}

	products := h.catalogService.Search(filter, ws.Reviews, ws.Purchases)
	utils.SuccessResponseWithMeta(c, products, gin.H{
		"total":  len(products),
		"filter": filter,
	})
}

// GET /api/catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	product, found := h.catalogService.Product(c.Param("id"))
	if !found {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": services.BuildProductView(product, ws.Reviews, ws.Purchases),
		"reviews": ws.Reviews.ReviewsFor(product.ID),
	})
}

// POST /api/catalog/products/:id/view
func (h *CatalogHandler) RecordView(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	product, found := h.catalogService.Product(c.Param("id"))
	if !found {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, ws.Recent.Record(product))
}

// GET /api/catalog/products/:id/reviews
func (h *CatalogHandler) GetReviews(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	product, found := h.catalogService.Product(c.Param("id"))
	if !found {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	reviews := ws.Reviews.ReviewsFor(product.ID)
	utils.ListResponse(c, reviews, len(reviews))
}

// POST /api/catalog/products/:id/reviews
func (h *CatalogHandler) AddReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	product, found := h.catalogService.Product(c.Param("id"))
	if !found {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	// Reviews are limited to buyers of the product
	if !ws.Purchases.HasPurchased(product.ID) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyReviewPurchaseNeeded))
		return
	}

	var req AddReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, added := ws.AddReview(product.ID, req.Rating, req.Comment)
	if !added {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReviewInvalid), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewAdded),
		"review":  review,
		"product": services.BuildProductView(product, ws.Reviews, ws.Purchases),
	})
}

// POST /api/catalog/products/:id/purchase
func (h *CatalogHandler) Purchase(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	product, found := h.catalogService.Product(c.Param("id"))
	if !found {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	ws.Buy(product.ID)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductPurchased),
		"product": services.BuildProductView(product, ws.Reviews, ws.Purchases),
	})
}

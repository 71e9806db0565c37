// internal/handlers/buyer.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/services"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

const (
	minQRCodeSize = 64
	maxQRCodeSize = 1024
)

type BuyerHandler struct {
	orderService *services.OrderService
}

func NewBuyerHandler(orderService *services.OrderService) *BuyerHandler {
	return &BuyerHandler{
		orderService: orderService,
	}
}

type ScanOrderRequest struct {
	Payload string `json:"payload" validate:"required,notblank"`
}

// GET /api/buyer/orders
func (h *BuyerHandler) GetOrders(c *gin.Context) {
	orders := h.orderService.List()
	utils.ListResponse(c, orders, len(orders))
}

// GET /api/buyer/orders/:orderId
func (h *BuyerHandler) GetOrder(c *gin.Context) {
	id := c.Param("orderId")

	download, err := h.orderService.Download(id, qrCodePath(id))
	if err != nil {
		h.orderError(c, err)
		return
	}

	utils.SuccessResponse(c, download)
}

// GET /api/buyer/orders/:orderId/qrcode
func (h *BuyerHandler) GetOrderQRCode(c *gin.Context) {
	size := services.DefaultQRCodeSize
	if sizeStr := c.Query("size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed >= minQRCodeSize && parsed <= maxQRCodeSize {
			size = parsed
		}
	}

	png, err := h.orderService.QRCode(c.Param("orderId"), size)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// POST /api/buyer/orders/scan
func (h *BuyerHandler) ScanOrder(c *gin.Context) {
	var req ScanOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.ResolveScan(req.Payload)
	if err != nil {
		h.orderError(c, err)
		return
	}

	download, err := h.orderService.Download(order.ID, qrCodePath(order.ID))
	if err != nil {
		h.orderError(c, err)
		return
	}

	utils.SuccessResponse(c, download)
}

func (h *BuyerHandler) orderError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrOrderNotFound) {
		utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
		return
	}
	utils.InternalErrorResponse(c, "")
}

func qrCodePath(orderID string) string {
	return "/api/buyer/orders/" + orderID + "/qrcode"
}

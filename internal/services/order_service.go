// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/javajoker/marketflow-backend/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

const (
	downloadRoute     = "/buyer/download/"
	DefaultQRCodeSize = 256
)

// OrderService serves the static buyer order history.
type OrderService struct {
	orders          []models.Order
	frontendBaseURL string
}

func NewOrderService(orders []models.Order, frontendBaseURL string) *OrderService {
	return &OrderService{
		orders:          orders,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
	}
}

func (s *OrderService) List() []models.Order {
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrderService) Get(id string) (models.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// DownloadURL is the client route of the download page for id.
func (s *OrderService) DownloadURL(id string) string {
	return s.frontendBaseURL + "/#" + downloadRoute + url.PathEscape(id)
}

func (s *OrderService) Download(id, qrCodeURL string) (models.OrderDownload, error) {
	order, err := s.Get(id)
	if err != nil {
		return models.OrderDownload{}, err
	}
	return models.OrderDownload{
		Order:           order,
		PaymentVerified: order.Status == models.OrderStatusCompleted,
		DownloadURL:     s.DownloadURL(order.ID),
		QRCodeURL:       qrCodeURL,
	}, nil
}

// QRCode renders a PNG QR code pointing at the download page of id.
func (s *OrderService) QRCode(id string, size int) ([]byte, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRCodeSize
	}
	png, err := qrcode.Encode(s.DownloadURL(order.ID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// ResolveScan maps a scanned payload, either a bare order id or a download
// URL, to its order.
func (s *OrderService) ResolveScan(payload string) (models.Order, error) {
	code := strings.TrimSpace(payload)
	if i := strings.LastIndex(code, downloadRoute); i >= 0 {
		code = code[i+len(downloadRoute):]
		if j := strings.IndexAny(code, "?#/"); j >= 0 {
			code = code[:j]
		}
		if unescaped, err := url.PathUnescape(code); err == nil {
			code = unescaped
		}
	}
	if code == "" {
		return models.Order{}, ErrOrderNotFound
	}
	return s.Get(strings.ToUpper(code))
}

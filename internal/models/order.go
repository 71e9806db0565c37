// internal/models/order.go
package models

type Order struct {
	ID          string      `json:"id"`
	ProductName string      `json:"product_name"`
	SellerName  string      `json:"seller_name"`
	Date        string      `json:"date"`
	Status      OrderStatus `json:"status"`
	Thumbnail   string      `json:"thumbnail"`
}

type OrderDownload struct {
	Order
	PaymentVerified bool   `json:"payment_verified"`
	DownloadURL     string `json:"download_url"`
	QRCodeURL       string `json:"qr_code_url"`
}

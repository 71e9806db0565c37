// internal/models/product.go
package models

type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	IsNew       bool    `json:"is_new,omitempty"`
}

// ProductView is a product with its aggregates derived from the review ledger.
type ProductView struct {
	Product
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	Purchased     bool    `json:"purchased"`
}

type Review struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	UserName   string `json:"user_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Date       string `json:"date"`
	UserImage  string `json:"user_image,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

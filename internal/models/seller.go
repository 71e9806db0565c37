// internal/models/seller.go
package models

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

type SellerMetric struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Change    string `json:"change"`
	Trend     Trend  `json:"trend"`
	Timeframe string `json:"timeframe,omitempty"`
}

type RevenuePoint struct {
	Name    string `json:"name"`
	Revenue int    `json:"revenue"`
	Volume  int    `json:"volume"`
}

type CategorySales struct {
	Category string `json:"category"`
	Sales    int    `json:"sales"`
	Color    string `json:"color"`
}

type TopProduct struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Sales    int    `json:"sales"`
	Revenue  string `json:"revenue"`
	Growth   string `json:"growth"`
	Status   string `json:"status"`
}

type SellerDashboard struct {
	Metrics       []SellerMetric  `json:"metrics"`
	Revenue       []RevenuePoint  `json:"revenue"`
	CategorySales []CategorySales `json:"category_sales"`
	TopProducts   []TopProduct    `json:"top_products"`
}

// ProductDraft is the Add Product form state of a seller.
type ProductDraft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Price        string   `json:"price"`
	PrimaryImage string   `json:"primary_image,omitempty"`
	Gallery      []string `json:"gallery"`
}

type OnboardingProgress struct {
	Connecting bool     `json:"connecting"`
	Step       int      `json:"step"`
	Steps      []string `json:"steps"`
	Completed  bool     `json:"completed"`
	RedirectTo string   `json:"redirect_to,omitempty"`
}

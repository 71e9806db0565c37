// internal/database/seed.go
package database

import "github.com/javajoker/marketflow-backend/internal/models"

// CategoryAll is the catalog category sentinel that matches every product.
const CategoryAll = "All Assets"

// Categories is the fixed catalog category enumeration, sentinel first.
var Categories = []string{CategoryAll, "UI Kits", "PDF Guides", "Figma Files", "Software", "Icons", "Design Assets"}

// DraftCategories are the categories offered by the Add Product form.
var DraftCategories = []string{"Design Assets", "Software / Scripts", "Templates", "E-books"}

// DefaultIdentity is the acting user of every new workspace.
var DefaultIdentity = models.Identity{
	UserID: "USR-101",
	Name:   "Alex Rivera",
	Image:  "https://picsum.photos/seed/alex/100/100",
}

// InitialPurchases are the product ids every new workspace has already bought.
var InitialPurchases = []string{"1"}

func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Title:       "Mobile UI Master Kit",
			Description: "Complete design system with 200+ components for React Native and Figma. Includes dark mode support, accessible components, and full documentation for seamless handoff.",
			Price:       49.00,
			Category:    "UI Kits",
			Image:       "https://picsum.photos/seed/ui/800/500",
			Rating:      4.9,
			Reviews:     124,
			IsNew:       true,
		},
		{
			ID:          "2",
			Title:       "SaaS Growth Blueprint",
			Description: "A 120-page comprehensive guide on scaling your digital products and services. Covers customer acquisition, retention strategies, and pricing optimization.",
			Price:       19.00,
			Category:    "PDF Guides",
			Image:       "https://picsum.photos/seed/book/800/500",
			Rating:      4.8,
			Reviews:     89,
		},
		{
			ID:          "3",
			Title:       "Stellar Icon Set Vol. 1",
			Description: "500+ handcrafted vector icons for modern web and mobile applications. Available in SVG, PNG, and Figma formats with multiple stroke weights.",
			Price:       25.00,
			Category:    "Icons",
			Image:       "https://picsum.photos/seed/icons/800/500",
			Rating:      5.0,
			Reviews:     42,
		},
		{
			ID:          "4",
			Title:       "Neo Admin Dashboard",
			Description: "High-performance React dashboard with real-time charts and secure authentication modules.",
			Price:       79.00,
			Category:    "Software",
			Image:       "https://picsum.photos/seed/admin/800/500",
			Rating:      4.7,
			Reviews:     12,
		},
	}
}

// SeedReviews returns the initial ledger, newest first.
func SeedReviews() []models.Review {
	return []models.Review{
		{ID: "r1", ProductID: "1", UserName: "Sarah Jenkins", Rating: 5, Comment: "Absolutely saved my team weeks of work. The components are pixel-perfect!", Date: "2 days ago", IsVerified: true, UserImage: "https://i.pravatar.cc/150?u=sarah"},
		{ID: "r2", ProductID: "1", UserName: "Marcus Thorne", Rating: 4, Comment: "Great library, would love more navigation patterns in the next update.", Date: "1 week ago", IsVerified: true, UserImage: "https://i.pravatar.cc/150?u=marcus"},
		{ID: "r3", ProductID: "2", UserName: "Lena Rivers", Rating: 5, Comment: "The pricing chapter alone is worth the entire price. Insightful.", Date: "3 days ago", IsVerified: true, UserImage: "https://i.pravatar.cc/150?u=lena"},
	}
}

func SeedOrders() []models.Order {
	return []models.Order{
		{ID: "ORD-8829-X", ProductName: "Premium UI Kit Pro", SellerName: "PixelDesign", Date: "Oct 12, 2023", Status: models.OrderStatusCompleted, Thumbnail: "https://picsum.photos/seed/ui/100/100"},
		{ID: "ORD-7741-K", ProductName: "Abstract 3D Renders", SellerName: "StudioArc", Date: "Oct 08, 2023", Status: models.OrderStatusCompleted, Thumbnail: "https://picsum.photos/seed/3d/100/100"},
		{ID: "ORD-6215-M", ProductName: "Modern Icon Set", SellerName: "IconicLabs", Date: "Sep 30, 2023", Status: models.OrderStatusProcessing, Thumbnail: "https://picsum.photos/seed/icons/100/100"},
	}
}

func SeedUsers() []models.ManagedUser {
	return []models.ManagedUser{
		{ID: "USR-101", Name: "Alex Rivera", Email: "alex@marketflow.io", Role: models.RoleBuyer, JoinedDate: "Jan 12, 2024", Avatar: "https://picsum.photos/seed/alex/100/100"},
		{ID: "USR-102", Name: "Jordan Smith", Email: "jordan.s@creators.com", Role: models.RoleSeller, JoinedDate: "Feb 05, 2024", Avatar: "https://picsum.photos/seed/jordan/100/100"},
		{ID: "USR-103", Name: "Elena Rodriguez", Email: "elena@admin.flow", Role: models.RoleAdmin, JoinedDate: "Nov 22, 2023", Avatar: "https://picsum.photos/seed/elena/100/100"},
		{ID: "USR-104", Name: "Marcus Chen", Email: "marcus@designlabs.net", Role: models.RoleSeller, JoinedDate: "Mar 15, 2024", Avatar: "https://picsum.photos/seed/marcus/100/100"},
		{ID: "USR-105", Name: "Sarah Blake", Email: "s.blake@freelance.org", Role: models.RoleBuyer, JoinedDate: "Apr 02, 2024", Avatar: "https://picsum.photos/seed/sarah/100/100"},
	}
}

func SeedAdminStats() []models.AdminStat {
	return []models.AdminStat{
		{Label: "Marketplace GMV", Value: "$1,248,390", Change: "+12.5%", Icon: "payments"},
		{Label: "Platform Fees", Value: "$84,512", Change: "+8.2%", Icon: "account_balance_wallet"},
		{Label: "Active Sellers", Value: "1,240", Change: "+5.1%", Icon: "groups"},
		{Label: "New Signups", Value: "48", Change: "+15.3%", Icon: "person_add"},
	}
}

func SeedSellerDashboard() models.SellerDashboard {
	return models.SellerDashboard{
		Metrics: []models.SellerMetric{
			{Label: "Gross Revenue", Value: "$12,450.00", Change: "+12.5%", Trend: models.TrendUp, Timeframe: "30D"},
			{Label: "Net Profit", Value: "$9,840.50", Change: "+10.2%", Trend: models.TrendUp},
			{Label: "Conversion Rate", Value: "3.84%", Change: "+0.4%", Trend: models.TrendUp},
			{Label: "Avg. Order Value", Value: "$42.10", Change: "-1.2%", Trend: models.TrendDown},
		},
		Revenue: []models.RevenuePoint{
			{Name: "Mon", Revenue: 4200, Volume: 45},
			{Name: "Tue", Revenue: 3800, Volume: 38},
			{Name: "Wed", Revenue: 5400, Volume: 56},
			{Name: "Thu", Revenue: 7200, Volume: 82},
			{Name: "Fri", Revenue: 6100, Volume: 68},
			{Name: "Sat", Revenue: 8900, Volume: 94},
			{Name: "Sun", Revenue: 9500, Volume: 102},
		},
		CategorySales: []models.CategorySales{
			{Category: "UI Kits", Sales: 4500, Color: "#0f7b79"},
			{Category: "Templates", Sales: 3200, Color: "#2dd4bf"},
			{Category: "Icons", Sales: 2100, Color: "#5eead4"},
			{Category: "Fonts", Sales: 1800, Color: "#99f6e4"},
		},
		TopProducts: []models.TopProduct{
			{ID: 1, Name: "Lumina Icon Pack", Category: "Icons", Sales: 184, Revenue: "$4,600.00", Growth: "+14.2%", Status: "In Stock"},
			{ID: 2, Name: "Auth Template Pro", Category: "Software", Sales: 122, Revenue: "$3,050.00", Growth: "+8.1%", Status: "In Stock"},
			{ID: 3, Name: "SaaS Design System", Category: "UI Kits", Sales: 98, Revenue: "$2,450.00", Growth: "+22.5%", Status: "Update Soon"},
			{ID: 4, Name: "Growth PDF Guide", Category: "E-books", Sales: 85, Revenue: "$1,275.00", Growth: "-3.4%", Status: "In Stock"},
		},
	}
}

// OnboardingSteps are the messages of the simulated payment connection.
var OnboardingSteps = []string{
	"Preparing secure connection...",
	"Redirection to Stripe gateway...",
	"Verifying business profile...",
	"Authenticating secure access...",
	"Syncing dashboard metadata...",
}

// internal/services/recently_viewed.go
package services

import (
	"sync"

	"github.com/javajoker/marketflow-backend/internal/models"
)

const recentlyViewedLimit = 5

// RecentlyViewed keeps the last viewed products, most recent first, without duplicates.
type RecentlyViewed struct {
	mu    sync.Mutex
	items []models.Product
}

func (r *RecentlyViewed) Record(p models.Product) []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []models.Product{p}
	for _, existing := range r.items {
		if existing.ID != p.ID {
			items = append(items, existing)
		}
	}
	if len(items) > recentlyViewedLimit {
		items = items[:recentlyViewedLimit]
	}
	r.items = items
	return r.snapshot()
}

func (r *RecentlyViewed) Items() []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

func (r *RecentlyViewed) snapshot() []models.Product {
	out := make([]models.Product, len(r.items))
	copy(out, r.items)
	return out
}

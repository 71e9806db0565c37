// internal/services/purchase_state.go
package services

import (
	"sort"
	"sync"
)

// PurchaseState holds the simulated purchased set and the cart counter.
// Purchases involve no payment and the cart holds a count, not line items.
type PurchaseState struct {
	mu        sync.RWMutex
	cartCount int
	purchased map[string]struct{}
}

func NewPurchaseState(initial []string) *PurchaseState {
	purchased := make(map[string]struct{}, len(initial))
	for _, id := range initial {
		purchased[id] = struct{}{}
	}
	return &PurchaseState{purchased: purchased}
}

// Buy adds productID to the purchased set. It reports whether the id was new.
func (p *PurchaseState) Buy(productID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.purchased[productID]; ok {
		return false
	}
	p.purchased[productID] = struct{}{}
	return true
}

func (p *PurchaseState) HasPurchased(productID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.purchased[productID]
	return ok
}

// PurchasedIDs returns the purchased set in ascending order.
func (p *PurchaseState) PurchasedIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]string, 0, len(p.purchased))
	for id := range p.purchased {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddToCart increments the cart counter and returns the new count.
func (p *PurchaseState) AddToCart() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cartCount++
	return p.cartCount
}

func (p *PurchaseState) CartCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cartCount
}

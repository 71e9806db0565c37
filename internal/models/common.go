// internal/models/common.go
package models

// Enums
type AppRole string

const (
	RoleBuyer  AppRole = "buyer"
	RoleSeller AppRole = "seller"
	RoleAdmin  AppRole = "admin"
)

func (r AppRole) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusPending    OrderStatus = "Pending"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusProcessing, OrderStatusPending:
		return true
	}
	return false
}

// Identity is the acting user of a workspace.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
}

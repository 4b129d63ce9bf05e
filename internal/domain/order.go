package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is only counted by the admin dashboard; checkout owns its lifecycle
type Order struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    *uuid.UUID  `json:"user_id,omitempty" db:"user_id"`
	Total     float64     `json:"total" db:"total"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// Stats are the dashboard counters
type Stats struct {
	Products  int64 `json:"products"`
	Orders    int64 `json:"orders"`
	Customers int64 `json:"customers"`
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusEnRoute   OrderStatus = "en_route"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists the canonical statuses in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusEnRoute,
	StatusDelivered,
	StatusCancelled,
}

// customerTransitions is the narrow vocabulary a customer may use.
var customerTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusCancelled},
}

// ParseOrderStatus converts raw input into a canonical status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	candidate := OrderStatus(strings.TrimSpace(s))
	for _, st := range OrderStatuses {
		if st == candidate {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an actor with the given role may move an
// order from s to next. Admins may jump to any status, intermediate states
// included; customers may only cancel a pending order.
func (s OrderStatus) CanTransition(role Role, next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		for _, allowed := range customerTransitions[s] {
			if allowed == next {
				return true
			}
		}
	}
	return false
}

// OrderItem is a single line of an order. It lives and dies with its order.
type OrderItem struct {
	ID        string
	ProductID string
	Quantity  int
}

// Order is the aggregate root of the ordering core.
type Order struct {
	ID             string
	UserID         string
	Items          []OrderItem
	Status         OrderStatus
	CreatedAt      time.Time
	IdempotencyKey string
}

// OrderItemView is an order line with product data copied in at read time.
type OrderItemView struct {
	ID        string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Purchaser identifies who placed an order. Only admins see it.
type Purchaser struct {
	ID    string
	Name  string
	Email string
}

// OrderView is the denormalized read projection of an order.
type OrderView struct {
	ID        string
	UserID    string
	Status    OrderStatus
	CreatedAt time.Time
	Items     []OrderItemView
	Purchaser *Purchaser
}

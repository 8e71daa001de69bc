package handler

import (
	"time"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// --- Requests ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity,omitempty"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// transitionRequest carries the raw status; the service rejects values
// outside the canonical set, including an empty one.
type transitionRequest struct {
	Status string `json:"status"`
}

// --- Responses ---

// errorResponse mirrors the envelope rendered by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type orderItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type purchaserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []orderItemResponse `json:"items"`
	User      *purchaserResponse  `json:"user,omitempty"`
}

type orderEnvelope struct {
	Message string        `json:"message"`
	Order   orderResponse `json:"order"`
}

type statusEventResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ActorID   string    `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	Timestamp time.Time `json:"timestamp"`
}

// --- Mappers ---

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
	}
}

func toOrderResponse(v domain.OrderView) orderResponse {
	items := make([]orderItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.InexactFloat64(),
			Quantity:  it.Quantity,
		}
	}
	resp := orderResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt,
		Items:     items,
	}
	if v.Purchaser != nil {
		resp.User = &purchaserResponse{ID: v.Purchaser.ID, Name: v.Purchaser.Name, Email: v.Purchaser.Email}
	}
	return resp
}

func toOrderResponses(views []domain.OrderView) []orderResponse {
	out := make([]orderResponse, len(views))
	for i, v := range views {
		out[i] = toOrderResponse(v)
	}
	return out
}

func toStatusEventResponses(events []domain.StatusEvent) []statusEventResponse {
	out := make([]statusEventResponse, len(events))
	for i, e := range events {
		out[i] = statusEventResponse{
			From:      string(e.From),
			To:        string(e.To),
			ActorID:   e.ActorID,
			ActorRole: string(e.ActorRole),
			Timestamp: e.Timestamp,
		}
	}
	return out
}

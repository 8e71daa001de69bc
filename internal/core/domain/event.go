package domain

import "time"

// StatusEvent is an append-only record of an accepted status transition.
// The order document itself keeps only its latest status.
type StatusEvent struct {
	OrderID   string      `json:"order_id" bson:"order_id"`
	From      OrderStatus `json:"from" bson:"from"`
	To        OrderStatus `json:"to" bson:"to"`
	ActorID   string      `json:"actor_id" bson:"actor_id"`
	ActorRole Role        `json:"actor_role" bson:"actor_role"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

package model

import "time"

// ChatMessage is one building-chat entry. Append-only; order is arrival
// order at the bus.
type ChatMessage struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SenderID   string    `json:"sender_id" bson:"sender_id" validate:"required,min=1,max=50"`
	SenderName string    `json:"sender_name" bson:"sender_name" validate:"required,min=1,max=100"`
	Text       string    `json:"text" bson:"text" validate:"required,min=1,max=2000"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

package model

import "time"

// Report is a resident-filed issue. Status progresses one way:
// Pending -> In Progress -> Resolved.
type Report struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID      string    `json:"user_id" bson:"user_id" validate:"required,min=1,max=50"`
	UserName    string    `json:"user_name" bson:"user_name" validate:"required,min=2,max=100"`
	Apartment   string    `json:"apartment" bson:"apartment" validate:"required,min=1,max=50"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=100"`
	Description string    `json:"description" bson:"description" validate:"required,min=2,max=2000"`
	Category    string    `json:"category" bson:"category" validate:"required,oneof=Maintenance Noise Security Other"`
	Status      string    `json:"status" bson:"status" validate:"omitempty,oneof=Pending 'In Progress' Resolved"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

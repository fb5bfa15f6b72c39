package model

import "time"

type Announcement struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title      string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Content    string    `json:"content" bson:"content" validate:"required,min=2,max=5000"`
	Tone       string    `json:"tone,omitempty" bson:"tone" validate:"omitempty,max=50"`
	SenderName string    `json:"sender_name" bson:"sender_name" validate:"omitempty,max=100"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

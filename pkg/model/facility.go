package model

import "time"

// Facility is a bookable amenity in the building catalog. Bookings
// denormalize the facility name, so later catalog edits never rewrite
// history.
type Facility struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Category  string    `json:"category" bson:"category" validate:"required,min=2,max=50"`
	Image     string    `json:"image,omitempty" bson:"image" validate:"omitempty,url"`
	OpenTime  string    `json:"open_time" bson:"open_time" validate:"required,hhmm"`
	CloseTime string    `json:"close_time" bson:"close_time" validate:"required,hhmm"`
	Price     float64   `json:"price" bson:"price" validate:"min=0"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

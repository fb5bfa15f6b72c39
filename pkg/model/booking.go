package model

import "time"

// Booking reserves one slot of one facility for one calendar day.
// At most one Confirmed booking may exist per (facility, date, slot);
// Cancelled and Completed bookings never block the slot.
type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FacilityID   string    `json:"facility_id" bson:"facility_id" validate:"required,mongodb"`
	FacilityName string    `json:"facility_name" bson:"facility_name" validate:"required,min=2,max=100"`
	UserID       string    `json:"user_id" bson:"user_id" validate:"required,min=1,max=50"`
	UserName     string    `json:"user_name" bson:"user_name" validate:"required,min=2,max=100"`
	Date         string    `json:"date" bson:"date" validate:"required,date_only"`
	TimeSlot     string    `json:"time_slot" bson:"time_slot" validate:"required,time_slot"`
	Status       string    `json:"status" bson:"status" validate:"omitempty,oneof=Confirmed Cancelled Completed"`
	AccessToken  string    `json:"access_token,omitempty" bson:"access_token" validate:"omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// SlotAvailability maps each slot of the daily grid to its occupancy for
// one facility and date.
type SlotAvailability struct {
	FacilityID string          `json:"facility_id"`
	Date       string          `json:"date"`
	Slots      map[string]bool `json:"slots"`
}

// AccessDecision is the verifier's answer to a scanned token.
type AccessDecision struct {
	Valid   bool     `json:"valid"`
	Reason  string   `json:"reason"`
	Booking *Booking `json:"booking,omitempty"`
}

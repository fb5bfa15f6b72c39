package model

import "time"

// Resident is a building occupant or administrator. The password hash
// never leaves the service.
type Resident struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Role         string    `json:"role" bson:"role" validate:"required,oneof=ADMIN RESIDENT"`
	Apartment    string    `json:"apartment,omitempty" bson:"apartment" validate:"omitempty,max=50"`
	Phone        string    `json:"phone,omitempty" bson:"phone" validate:"omitempty,e164"`
	Email        string    `json:"email,omitempty" bson:"email" validate:"omitempty,email"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3,max=50"`
	Password     string    `json:"password,omitempty" bson:"-" validate:"omitempty,min=6,max=100"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Avatar       string    `json:"avatar,omitempty" bson:"avatar" validate:"omitempty,url"`
	Status       string    `json:"status" bson:"status" validate:"omitempty,oneof=Active Inactive"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// Session is issued on login and discarded on logout; the token expires
// server-side after the configured TTL.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Resident  *Resident `json:"resident"`
}

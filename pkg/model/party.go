package model

import "time"

// Party is the person an appointment is booked for. Email is the natural key.
type Party struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	FirstName string    `json:"firstName" bson:"first_name"`
	LastName  string    `json:"lastName" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

package domain

import "time"

// Customer is a card holder. The PIN is stored only as a bcrypt hash;
// authentication compares against the hash and never returns it.
type Customer struct {
	CustomerID string    `json:"id"`
	Name       string    `json:"name"`
	CardNumber string    `json:"cardNumber"`
	PINHash    string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

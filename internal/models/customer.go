package models

import "time"

// Customer represents a row of the customers table.
type Customer struct {
	CustomerID string    `db:"customer_id"`
	Name       string    `db:"name"`
	CardNumber string    `db:"card_number"`
	PINHash    string    `db:"pin_hash"`
	CreatedAt  time.Time `db:"created_at"`
}

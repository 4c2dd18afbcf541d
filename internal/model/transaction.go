package model

import "time"

type Transaction struct {
	ID       string    `db:"id" json:"_id"`
	Username string    `db:"username" json:"username"`
	Type     string    `db:"type" json:"type"`
	Amount   float64   `db:"amount" json:"amount"`
	Date     time.Time `db:"date" json:"date"`
	Color    string    `db:"color" json:"color,omitempty"`
}

// TransactionFilter : optional constraints for listing a user's transactions.
// Zero values mean "no constraint". From is inclusive, Before exclusive.
type TransactionFilter struct {
	From      *time.Time
	Before    *time.Time
	MinAmount *float64
	MaxAmount *float64
}

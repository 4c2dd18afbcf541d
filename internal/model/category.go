package model

import "time"

type Category struct {
	Type      string    `db:"type" json:"type"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

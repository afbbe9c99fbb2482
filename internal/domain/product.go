package domain

import "time"

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

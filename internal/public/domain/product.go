package domain

import "time"

// Product is a catalog entry shown on the products page.
type Product struct {
	ID           string
	Name         string
	Image        string
	Brand        string
	Category     string
	Description  string
	Rating       float64
	NumReviews   int
	Price        float64
	CountInStock int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

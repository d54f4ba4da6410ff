package domain

import (
	"time"

	"github.com/mzansi-fresh-finds/api/internal/geo"
)

// Store represents a publicly visible store entity.
type Store struct {
	ID           string
	OwnerID      string
	OwnerName    string
	Name         string
	Address      string
	Location     *geo.Point
	ContactInfo  string
	OpeningHours string
	LogoURL      string
	CreatedAt    time.Time
}

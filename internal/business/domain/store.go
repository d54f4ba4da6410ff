package domain

import (
	"time"

	"github.com/mzansi-fresh-finds/api/internal/geo"
)

// Store aggregates data required for store management.
type Store struct {
	ID           string
	OwnerID      string
	Name         Text
	Address      Text
	Location     *geo.Point
	ContactInfo  string
	OpeningHours string
	LogoURL      URL
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor は書き込み操作を行う認証済みユーザー。
type Actor struct {
	UserID string
	Role   string
}

const (
	RoleStoreOwner = "store_owner"
	RoleAdmin      = "admin"
)

// IsAdmin reports whether the actor bypasses ownership checks.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage は管理者、または店舗オーナー本人のときに true。
func (a Actor) CanManage(store Store) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID != "" && a.UserID == store.OwnerID
}

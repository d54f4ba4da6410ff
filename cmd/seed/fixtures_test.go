package main

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedFixturesAreConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	users := generateUsers(now)
	stores := generateStores(rng, users, 6, now)
	deals := generateDeals(rng, stores, 3, now)
	require.Len(t, stores, 6)
	require.Len(t, deals, 18)

	owners := map[any]bool{}
	for _, u := range users {
		if u.Role == "store_owner" {
			owners[u.ID] = true
		}
	}
	storeOwner := map[any]any{}
	for _, s := range stores {
		assert.True(t, owners[s.User], "store owner must be a store_owner")
		require.NotNil(t, s.Location)
		assert.Equal(t, "Point", s.Location.Type)
		require.Len(t, s.Location.Coordinates, 2)
		assert.InDelta(t, 0, s.Location.Coordinates[1], 90)
		storeOwner[s.ID] = s.User
	}
	for _, d := range deals {
		assert.LessOrEqual(t, d.DiscountedPrice, d.OriginalPrice)
		assert.GreaterOrEqual(t, d.QuantityAvailable, 0)
		assert.Equal(t, storeOwner[d.Store], d.User)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 12.35, round(12.345678, 2))
	assert.Equal(t, -26.20411, round(-26.204108, 5))
}

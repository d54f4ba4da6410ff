package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	v, err := NewText("storeName", "  Corner Bakery ")
	require.NoError(t, err)
	assert.Equal(t, "Corner Bakery", v.String())

	_, err = NewText("storeName", "   ")
	assert.EqualError(t, err, "storeName is required")
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney("originalPrice", 12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, m.Float64())

	_, err = NewMoney("originalPrice", -1)
	assert.Error(t, err)
	_, err = NewMoney("originalPrice", math.NaN())
	assert.Error(t, err)
}

func TestNewQuantity(t *testing.T) {
	q, err := NewQuantity(0)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Int())

	_, err = NewQuantity(-2)
	assert.Error(t, err)
}

func TestNewURL(t *testing.T) {
	u, err := NewURL("")
	require.NoError(t, err)
	assert.Empty(t, u.String())

	u, err = NewURL("https://cdn.example.com/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo.png", u.String())

	_, err = NewURL("not a url")
	assert.Error(t, err)
}

func TestNewLocation(t *testing.T) {
	lat, lon := -26.2, 28.04

	p, err := NewLocation(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewLocation(&lat, &lon)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []float64{28.04, -26.2}, p.Coordinates())

	_, err = NewLocation(&lat, nil)
	assert.Error(t, err)

	bad := 120.0
	_, err = NewLocation(&bad, &lon)
	assert.Error(t, err)
}

func TestDealCheckPrices(t *testing.T) {
	assert.NoError(t, Deal{OriginalPrice: 10, DiscountedPrice: 10}.CheckPrices())
	assert.NoError(t, Deal{OriginalPrice: 10, DiscountedPrice: 4}.CheckPrices())
	assert.ErrorIs(t, Deal{OriginalPrice: 10, DiscountedPrice: 11}.CheckPrices(), ErrDiscountExceedsOriginal)
}

func TestActorCanManage(t *testing.T) {
	store := Store{OwnerID: "owner"}

	assert.True(t, Actor{UserID: "owner", Role: RoleStoreOwner}.CanManage(store))
	assert.False(t, Actor{UserID: "someone", Role: RoleStoreOwner}.CanManage(store))
	assert.True(t, Actor{UserID: "someone", Role: RoleAdmin}.CanManage(store))
	assert.False(t, Actor{Role: RoleStoreOwner}.CanManage(Store{}))
}

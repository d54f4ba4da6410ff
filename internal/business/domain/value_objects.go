package domain

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/geo"
)

// Text is a trimmed, required free-text field.
type Text string

func NewText(field, value string) (Text, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return Text(trimmed), nil
}

func (t Text) String() string {
	return string(t)
}

// Money は 0 以上の有限な金額。
type Money float64

func NewMoney(field string, value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s cannot be negative", field)
	}
	return Money(value), nil
}

func (m Money) Float64() float64 {
	return float64(m)
}

// Quantity は在庫数。
type Quantity int

func NewQuantity(value int) (Quantity, error) {
	if value < 0 {
		return 0, fmt.Errorf("quantityAvailable cannot be negative")
	}
	return Quantity(value), nil
}

func (q Quantity) Int() int {
	return int(q)
}

type URL string

func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

// NewLocation は緯度・経度の組から店舗位置を作る。両方 nil なら位置なし、片方だけはエラー。
func NewLocation(latitude, longitude *float64) (*geo.Point, error) {
	if latitude == nil && longitude == nil {
		return nil, nil
	}
	if latitude == nil || longitude == nil {
		return nil, fmt.Errorf("latitude and longitude must be provided together")
	}
	p, err := geo.NewPoint(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for store/deal endpoints.
	MaxRequestBody = 1 << 20
	// DefaultRequestTimeout is used when a handler is built without an explicit timeout.
	DefaultRequestTimeout = 5 * time.Second
)

package utils

import (
	"time"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Request handling defaults
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultExportTimeout  = 5 * time.Minute

	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"
)

package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultUserAgent   = "Biopage/1.0 (https://github.com/biopage/biopage)"
	DefaultHTTPTimeout = 20 * time.Second
	DefaultOutputDir   = "public"
)

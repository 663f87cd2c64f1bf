package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// Target page
	DefaultTargetURL = "https://www.mmtcpamp.com/shop/gold"

	// Persisted store
	DefaultStorePath = "gold_prices.xlsx"
	DefaultSheetName = "Daily"

	// Rendering
	DefaultNavTimeout   = 90 * time.Second
	DefaultReadyTimeout = 25 * time.Second
	DefaultScrollSteps  = 6
	DefaultScrollPause  = 700 * time.Millisecond
	DefaultWindowWidth  = 1440
	DefaultWindowHeight = 1024

	// Regional visitor spoofing (the target prices in INR and gates some
	// content on locale)
	DefaultLocale    = "en-IN"
	DefaultTimezone  = "Asia/Kolkata"
	DefaultLatitude  = 19.0760
	DefaultLongitude = 72.8777

	// Retry ladder
	DefaultRetryPause      = 5 * time.Second
	DefaultAttemptRateRPS  = 0.2
	DefaultAttemptBurst    = 2
	DefaultMaxPayloads     = 50
	DefaultMaxPayloadBytes = 2 << 20 // 2MB per captured body

	DefaultDebugDir = "debug"
)

// ABOUTME: Centralized configuration defaults for curio
// ABOUTME: Contains the feed endpoint, timing windows and display settings

package config

import "time"

// Feed settings
const (
	DefaultFeedURL       = "https://davidcaddy.github.io/VicCurio/approved.json"
	DefaultCacheValidity = time.Hour
	DefaultHistoryDays   = 14
)

// HTTP settings
const (
	DefaultHTTPTimeout = 30 * time.Second
)

// Storage settings
const (
	DefaultBackend = "sqlite"
	DBFilename     = "curio.db"
)

// Display settings
const (
	DefaultListLimit = 20
	SeparatorWidth   = 60
	DateFormatLong   = "Mon, 02 Jan 2006 15:04 MST"
)

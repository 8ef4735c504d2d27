package domain

import "time"

// Preferences holds user settings that outlive a single session.
type Preferences struct {
	ID         string
	HourlyRate float64
	UpdatedAt  time.Time
}

// DefaultPreferencesID is the single preferences row.
const DefaultPreferencesID = "default"

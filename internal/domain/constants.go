package domain

import "time"

// Default engine settings, used when the settings store has no row yet.
// 7..20 gives 14 possible start hours per day.
const (
	DefaultOpenHour            = 7
	DefaultCloseHour           = 20
	DefaultMinConsecutiveHours = 2
	DefaultTwoCleanerThreshold = 4
	DefaultMaxCommitAttempts   = 5
)

// TwoCleanerSpeedup is the assumed productivity factor of a second cleaner:
// a job estimated at N hours for one cleaner takes ceil(N / 1.75) hours for two.
const TwoCleanerSpeedup = 1.75

// Business validation constants
const (
	MinOpenHour       = 0
	MaxCloseHour      = 23
	MinCommitAttempts = 1
	MaxCommitAttempts = 10

	MaxNameLength    = 200
	MaxPhoneLength   = 32
	MaxContactLength = 200
)

// Time format constants
const (
	DateFormat      = "2006-01-02" // YYYY-MM-DD, the day record key
	TimestampFormat = time.RFC3339
)

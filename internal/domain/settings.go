package domain

import "fmt"

// EngineSettings holds the calendar-wide allocation parameters.
// They are read from the settings store; hard-coded values appear only
// as the defaults below.
type EngineSettings struct {
	OpenHour            int // first bookable start hour, inclusive
	CloseHour           int // last bookable start hour, inclusive
	MinConsecutiveHours int // minimum free run that keeps a day bookable
	TwoCleanerThreshold int // estimated hours above which two cleaners are assigned
	MaxCommitAttempts   int // bound on optimistic-commit retries
}

// DefaultEngineSettings returns the settings used when the store has no row.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		OpenHour:            DefaultOpenHour,
		CloseHour:           DefaultCloseHour,
		MinConsecutiveHours: DefaultMinConsecutiveHours,
		TwoCleanerThreshold: DefaultTwoCleanerThreshold,
		MaxCommitAttempts:   DefaultMaxCommitAttempts,
	}
}

// SlotCount returns the number of bookable start hours per day.
func (s EngineSettings) SlotCount() int {
	return s.CloseHour - s.OpenHour + 1
}

// ContainsHour reports whether the hour is a valid start hour.
func (s EngineSettings) ContainsHour(hour int) bool {
	return hour >= s.OpenHour && hour <= s.CloseHour
}

// Validate checks that the settings describe a usable calendar.
func (s EngineSettings) Validate() error {
	if s.OpenHour < MinOpenHour || s.CloseHour > MaxCloseHour {
		return fmt.Errorf("open/close hours must be within %d..%d", MinOpenHour, MaxCloseHour)
	}
	if s.OpenHour >= s.CloseHour {
		return fmt.Errorf("open hour %d must be before close hour %d", s.OpenHour, s.CloseHour)
	}
	if s.MinConsecutiveHours < 1 || s.MinConsecutiveHours > s.SlotCount() {
		return fmt.Errorf("min consecutive hours %d out of range", s.MinConsecutiveHours)
	}
	if s.TwoCleanerThreshold < 1 {
		return fmt.Errorf("two cleaner threshold must be positive")
	}
	if s.MaxCommitAttempts < MinCommitAttempts || s.MaxCommitAttempts > MaxCommitAttempts {
		return fmt.Errorf("max commit attempts %d out of range %d..%d",
			s.MaxCommitAttempts, MinCommitAttempts, MaxCommitAttempts)
	}
	return nil
}

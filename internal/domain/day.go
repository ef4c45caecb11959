package domain

import "time"

// DayRecord is the persisted occupancy state for a single calendar date.
// Version is the optimistic-concurrency token: 0 means the record has never
// been stored, every successful commit increments it.
type DayRecord struct {
	Date        time.Time
	FullyBooked bool // derived: must equal !ConsecutiveAvailable after every mutation
	ManualBlock bool // manual unavailability override; input only, never written by the engine
	BookedSlots SlotMap
	Version     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDayRecord returns an empty, never-stored record for the date.
func NewDayRecord(date time.Time) *DayRecord {
	return &DayRecord{
		Date:        date,
		BookedSlots: make(SlotMap),
	}
}

// Clone returns an independent copy, safe to mutate during a commit attempt.
func (d *DayRecord) Clone() *DayRecord {
	clone := *d
	clone.BookedSlots = d.BookedSlots.Clone()
	return &clone
}

// IsEmpty reports whether the day holds no booked slots.
func (d *DayRecord) IsEmpty() bool {
	return len(d.BookedSlots) == 0
}

// IsUnavailable reports whether the day should be listed as unavailable:
// either the derived flag is set or a manual block is in place.
func (d *DayRecord) IsUnavailable() bool {
	return d.FullyBooked || d.ManualBlock
}

// FreeSlots returns the free start hours within the configured range, ascending.
func (d *DayRecord) FreeSlots(settings EngineSettings) []int {
	free := make([]int, 0, settings.SlotCount())
	for hour := settings.OpenHour; hour <= settings.CloseHour; hour++ {
		if _, booked := d.BookedSlots[hour]; !booked {
			free = append(free, hour)
		}
	}
	return free
}

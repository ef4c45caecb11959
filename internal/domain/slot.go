package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SlotOccupant is the value stored for one booked hour.
// Every slot of the same booking carries the same BookingID, which is how
// a booking's full range is reconstructed and undone as a group.
type SlotOccupant struct {
	BookingID        string `json:"bookingId"`
	BookedBy         string `json:"bookedBy"` // contact identifier (email or phone)
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	BookingTimestamp string `json:"bookingTimestamp"` // ISO-8601
	ServiceType      string `json:"serviceType"`
}

// SlotMap maps a start hour to its occupant. Absence of a key means the
// hour is free. The JSON form uses "<hour>:00" keys to match the persisted
// day schema.
type SlotMap map[int]SlotOccupant

// SlotKey formats an hour as the persisted slot key, e.g. 9 -> "9:00".
func SlotKey(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

// ParseSlotKey parses a persisted slot key back into an hour.
func ParseSlotKey(key string) (int, error) {
	base, ok := strings.CutSuffix(key, ":00")
	if !ok {
		return 0, fmt.Errorf("invalid slot key %q", key)
	}
	hour, err := strconv.Atoi(base)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid slot key %q", key)
	}
	return hour, nil
}

// MarshalJSON encodes the map with "<hour>:00" keys.
func (m SlotMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]SlotOccupant, len(m))
	for hour, occ := range m {
		out[SlotKey(hour)] = occ
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes "<hour>:00" keys back into hours.
func (m *SlotMap) UnmarshalJSON(data []byte) error {
	raw := make(map[string]SlotOccupant)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(SlotMap, len(raw))
	for key, occ := range raw {
		hour, err := ParseSlotKey(key)
		if err != nil {
			return err
		}
		out[hour] = occ
	}
	*m = out
	return nil
}

// Clone returns an independent copy of the map.
func (m SlotMap) Clone() SlotMap {
	out := make(SlotMap, len(m))
	for hour, occ := range m {
		out[hour] = occ
	}
	return out
}

// Hours returns the occupied hours in ascending order.
func (m SlotMap) Hours() []int {
	hours := make([]int, 0, len(m))
	for hour := range m {
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	return hours
}

// BookingHours returns the hours occupied by the given booking, ascending.
func (m SlotMap) BookingHours(bookingID string) []int {
	hours := make([]int, 0)
	for hour, occ := range m {
		if occ.BookingID == bookingID {
			hours = append(hours, hour)
		}
	}
	sort.Ints(hours)
	return hours
}

// SlotRange returns the hours a booking starting at start and lasting the
// given number of whole hours would occupy: {start, ..., start+hours-1}.
func SlotRange(start, hours int) []int {
	out := make([]int, 0, hours)
	for i := 0; i < hours; i++ {
		out = append(out, start+i)
	}
	return out
}

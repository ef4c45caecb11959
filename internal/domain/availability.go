package domain

// ConsecutiveAvailable reports whether the free hours of a day still contain
// a run of at least settings.MinConsecutiveHours adjacent hours. It is the
// sole authority for the FullyBooked flag: after every successful mutation
// the flag must be set to the negation of this function, never inferred
// another way.
//
// The scan walks the configured hour range left to right keeping a run
// counter that resets on every occupied hour and returns as soon as the
// counter reaches the minimum. Pure, O(slot count).
func ConsecutiveAvailable(booked SlotMap, settings EngineSettings) bool {
	run := 0
	for hour := settings.OpenHour; hour <= settings.CloseHour; hour++ {
		if _, occupied := booked[hour]; occupied {
			run = 0
			continue
		}
		run++
		if run >= settings.MinConsecutiveHours {
			return true
		}
	}
	return false
}

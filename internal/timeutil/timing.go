package timeutil

import "time"

const nanosPerSecond = int64(time.Second)

// TimePoint is an absolute instant held as signed nanoseconds since the Unix
// epoch. Carry and borrow between seconds and nanoseconds never needs to be
// handled by callers.
type TimePoint int64

// FromTime converts t to a TimePoint.
func FromTime(t time.Time) TimePoint {
	return TimePoint(t.UnixNano())
}

// Normalize folds a seconds/nanoseconds pair into a TimePoint. nsec may be
// negative or exceed one second.
func Normalize(sec, nsec int64) TimePoint {
	return TimePoint(sec*nanosPerSecond + nsec)
}

// Split returns the seconds and nanoseconds of p with nsec in [0, 1e9).
func (p TimePoint) Split() (sec, nsec int64) {
	sec = int64(p) / nanosPerSecond
	nsec = int64(p) % nanosPerSecond
	if nsec < 0 {
		nsec += nanosPerSecond
		sec--
	}
	return sec, nsec
}

// Time converts p back to a time.Time in the local zone.
func (p TimePoint) Time() time.Time {
	sec, nsec := p.Split()
	return time.Unix(sec, nsec)
}

// Sub returns x - y and whether the result is negative, i.e. x is earlier
// than y. Callers use the flag to tell an overrun budget from a remaining one.
func Sub(x, y TimePoint) (time.Duration, bool) {
	d := time.Duration(x - y)
	return d, d < 0
}

// Deadline returns now + offset as read from c.
func Deadline(c Clock, offset time.Duration) TimePoint {
	return FromTime(c.Now()) + TimePoint(offset)
}

package setup

import (
	"time"
)

const (
	// DefaultOffsetHours places seed events in UTC-5.
	DefaultOffsetHours = 5

	// WireTimeFormat is the timestamp layout the record store expects.
	WireTimeFormat = "2006-01-02T15:04:05.000Z"
)

// Scheduler computes absolute instants for wall-clock times in a fixed civil
// offset west of UTC. OffsetHours of 5 means UTC-5.
type Scheduler struct {
	OffsetHours int
}

// NewScheduler returns a scheduler for the passed offset.
func NewScheduler(offsetHours int) Scheduler {
	return Scheduler{OffsetHours: offsetHours}
}

func (s Scheduler) offset() time.Duration {
	return time.Duration(s.OffsetHours) * time.Hour
}

// Zone returns the target civil offset as a fixed location.
func (s Scheduler) Zone() *time.Location {
	return time.FixedZone("", -s.OffsetHours*60*60)
}

// At returns the instant for hour:minute local time, dayOffset days after the
// local calendar date of now.
func (s Scheduler) At(now time.Time, dayOffset, hour, minute int) time.Time {
	year, month, day := now.In(s.Zone()).Date()

	naive := time.Date(year, month, day+dayOffset, hour, minute, 0, 0, time.UTC)

	return naive.Add(s.offset())
}

// WeekAnchor returns the day offset from today to the most recent Monday.
func (s Scheduler) WeekAnchor(today time.Time) int {
	weekday := today.In(s.Zone()).Weekday()
	if weekday == time.Sunday {
		return -6
	}
	return 1 - int(weekday)
}

// ThisWeek returns the instant for hour:minute on the day that is
// daysFromMonday after this week's Monday.
func (s Scheduler) ThisWeek(now time.Time, daysFromMonday, hour, minute int) time.Time {
	return s.At(now, s.WeekAnchor(now)+daysFromMonday, hour, minute)
}

// Span returns the end of an event that lasts minutes after start.
func Span(start time.Time, minutes int) time.Time {
	return start.Add(time.Duration(minutes) * time.Minute)
}

// Local returns the wall-clock reading of t in the target offset.
func (s Scheduler) Local(t time.Time) time.Time {
	return t.In(s.Zone())
}

// FormatTime renders an instant in the wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(WireTimeFormat)
}

// ParseTime reads a wire formatted timestamp.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(WireTimeFormat, value)
}

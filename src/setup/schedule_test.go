package setup

import (
	"testing"
	"time"

	"github.com/agendaun/user-setup/src/setup/setuptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerAt(t *testing.T) {
	s := NewScheduler(DefaultOffsetHours)

	t.Run("golden path", func(t *testing.T) {
		at := s.At(setuptest.FixedNow, 0, 7, 0)

		assert.Equal(t, "2024-03-13T12:00:00.000Z", FormatTime(at))

		local := s.Local(at)
		assert.Equal(t, 7, local.Hour())
		assert.Equal(t, 0, local.Minute())
		assert.Equal(t, 13, local.Day())
	})

	t.Run("recovers the local hour for every hour of the day", func(t *testing.T) {
		for hour := 0; hour < 24; hour++ {
			at := s.At(setuptest.FixedNow, 0, hour, 30)

			assert.Equal(t, (hour+5)%24, at.UTC().Hour())
			assert.Equal(t, hour, at.Add(-5*time.Hour).UTC().Hour())
			assert.Equal(t, 30, at.UTC().Minute())
		}
	})

	t.Run("late local hours land on the next UTC day", func(t *testing.T) {
		at := s.At(setuptest.FixedNow, 1, 20, 0)

		assert.Equal(t, "2024-03-15T01:00:00.000Z", FormatTime(at))
		assert.Equal(t, 14, s.Local(at).Day())
	})

	t.Run("uses the local calendar date of now", func(t *testing.T) {
		now := time.Date(2024, time.March, 14, 2, 0, 0, 0, time.UTC)

		at := s.At(now, 0, 7, 0)

		assert.Equal(t, "2024-03-13T12:00:00.000Z", FormatTime(at))
	})

	t.Run("normalizes day overflow across months", func(t *testing.T) {
		now := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)

		assert.Equal(t, "2024-02-01T14:00:00.000Z", FormatTime(s.At(now, 1, 9, 0)))
		assert.Equal(t, "2023-12-31T14:00:00.000Z", FormatTime(s.At(now, -31, 9, 0)))
	})

	t.Run("ignores the zone of now", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)

		assert.Equal(t, s.At(setuptest.FixedNow, 2, 8, 15), s.At(setuptest.FixedNow.In(tokyo), 2, 8, 15))
	})

	t.Run("honors a different offset", func(t *testing.T) {
		at := NewScheduler(3).At(setuptest.FixedNow, 0, 7, 0)

		assert.Equal(t, "2024-03-13T10:00:00.000Z", FormatTime(at))
	})
}

func TestSchedulerWeekAnchor(t *testing.T) {
	s := NewScheduler(DefaultOffsetHours)

	cases := []struct {
		name   string
		today  time.Time
		anchor int
	}{
		{"monday", time.Date(2024, time.March, 11, 15, 0, 0, 0, time.UTC), 0},
		{"wednesday", setuptest.FixedNow, -2},
		{"saturday", time.Date(2024, time.March, 16, 15, 0, 0, 0, time.UTC), -5},
		{"sunday", time.Date(2024, time.March, 17, 15, 0, 0, 0, time.UTC), -6},
		{"sunday night in UTC is still sunday locally", time.Date(2024, time.March, 18, 3, 0, 0, 0, time.UTC), -6},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.anchor, s.WeekAnchor(c.today))
		})
	}

	t.Run("this week lands on monday through friday", func(t *testing.T) {
		for _, today := range []time.Time{setuptest.FixedNow, cases[3].today} {
			for day := 0; day < 5; day++ {
				at := s.Local(s.ThisWeek(today, day, 8, 0))

				assert.Equal(t, time.Weekday(day+1), at.Weekday())
				assert.Equal(t, 11+day, at.Day())
				assert.Equal(t, 8, at.Hour())
			}
		}
	})
}

func TestSpan(t *testing.T) {
	start := NewScheduler(DefaultOffsetHours).At(setuptest.FixedNow, 0, 14, 30)

	end := Span(start, 90)

	assert.Equal(t, 90*time.Minute, end.Sub(start))
	assert.Equal(t, "2024-03-13T21:00:00.000Z", FormatTime(end))
}

func TestParseTime(t *testing.T) {
	parsed, err := ParseTime("2024-03-13T12:00:00.000Z")

	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)))

	_, err = ParseTime("2024-03-13 12:00")
	assert.Error(t, err)
}

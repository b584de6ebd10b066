package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	t.Run("golden path", func(t *testing.T) {
		color, err := ParseColor(" Teal ")

		require.NoError(t, err)
		assert.Equal(t, ColorTeal, color)
	})

	t.Run("every palette color parses", func(t *testing.T) {
		for _, c := range Colors {
			parsed, err := ParseColor(string(c))

			assert.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	})

	t.Run("rejects colors outside the palette", func(t *testing.T) {
		_, err := ParseColor("magenta")

		assert.Error(t, err)
	})
}

func TestParseView(t *testing.T) {
	view, err := ParseView("MONTH")

	require.NoError(t, err)
	assert.Equal(t, ViewMonth, view)

	_, err = ParseView("year")
	assert.Error(t, err)
}

func TestRecordValidate(t *testing.T) {
	t.Run("profile requires a user", func(t *testing.T) {
		assert.Error(t, Profile{}.Validate())
		assert.NoError(t, Profile{UserID: "u1"}.Validate())
	})

	t.Run("calendar requires a known view", func(t *testing.T) {
		calendar := Calendar{Name: "c", Slug: CalendarSlug("u1"), DefaultView: "year", Profile: "prof:1"}

		assert.Error(t, calendar.Validate())

		calendar.DefaultView = ViewAgenda
		assert.NoError(t, calendar.Validate())
	})

	t.Run("etiquette requires a palette color", func(t *testing.T) {
		assert.Error(t, Etiquette{Name: "x", Color: "magenta", Calendar: "cal:1"}.Validate())
	})

	t.Run("event must not end before it starts", func(t *testing.T) {
		event := Event{
			Title:     "backwards",
			Start:     "2024-03-13T12:00:00.000Z",
			End:       "2024-03-13T11:00:00.000Z",
			Calendar:  "cal:1",
			Etiquette: "etq:1",
		}

		assert.Error(t, event.Validate())

		event.End = event.Start
		assert.NoError(t, event.Validate())

		event.Start = "yesterday"
		assert.Error(t, event.Validate())
	})
}

func TestOwnerPermissions(t *testing.T) {
	assert.Equal(t, []string{
		`read("user:u1")`,
		`update("user:u1")`,
		`delete("user:u1")`,
	}, OwnerPermissions("u1"))
}

func TestKindKeys(t *testing.T) {
	for _, kind := range []Kind{KindProfile, KindCalendar, KindEtiquette, KindEvent} {
		assert.NotEmpty(t, kind.IDPrefix())
		assert.NotEmpty(t, kind.SortKey())
	}

	assert.Regexp(t, `^cal:[0-9A-Za-z]{27}$`, NewID(KindCalendar))
	assert.NotEqual(t, NewID(KindEvent), NewID(KindEvent))
	assert.Equal(t, "personal-u1", CalendarSlug("u1"))
}

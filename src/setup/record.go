package setup

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"gopkg.in/yaml.v3"
)

// Kind names a record type in the store.
type Kind string

const (
	KindProfile   Kind = "profile"
	KindCalendar  Kind = "calendar"
	KindEtiquette Kind = "etiquette"
	KindEvent     Kind = "event"
)

var kindKeys = map[Kind]struct {
	prefix  string
	sortKey string
}{
	KindProfile:   {prefix: "prof", sortKey: "_PROFILE"},
	KindCalendar:  {prefix: "cal", sortKey: "_CALENDAR"},
	KindEtiquette: {prefix: "etq", sortKey: "_ETIQUETTE"},
	KindEvent:     {prefix: "evt", sortKey: "_EVENT"},
}

// IDPrefix returns the prefix for ids generated for the kind.
func (k Kind) IDPrefix() string {
	return kindKeys[k].prefix
}

// SortKey returns the sort key value items of this kind are stored under.
func (k Kind) SortKey() string {
	return kindKeys[k].sortKey
}

// PrimaryKey contains the compound key for a records primary key
type PrimaryKey struct {
	HashKey string
	SortKey string
}

func (p PrimaryKey) Dynamo() map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(p.HashKey)},
		"SK": {S: aws.String(p.SortKey)},
	}
}

// Record is a value written to the store.
type Record interface {
	Kind() Kind
	Validate() error
}

// Color is the display color of an etiquette.
type Color string

const (
	ColorGray   Color = "gray"
	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorPink   Color = "pink"
	ColorTeal   Color = "teal"
	ColorYellow Color = "yellow"
	ColorLime   Color = "lime"
)

// Colors lists the palette in display order.
var Colors = []Color{
	ColorGray, ColorBlue, ColorRed, ColorGreen, ColorPurple,
	ColorOrange, ColorPink, ColorTeal, ColorYellow, ColorLime,
}

func (c Color) Valid() bool {
	for _, color := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

// ParseColor returns the palette color named by s.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// View is the default display mode of a calendar.
type View string

const (
	ViewAgenda View = "agenda"
	ViewMonth  View = "month"
	ViewWeek   View = "week"
	ViewDay    View = "day"
)

// Views lists the supported display modes.
var Views = []View{ViewAgenda, ViewMonth, ViewWeek, ViewDay}

func (v View) Valid() bool {
	for _, view := range Views {
		if v == view {
			return true
		}
	}
	return false
}

// ParseView returns the display mode named by s.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q", s)
	}
	return v, nil
}

func (v *View) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseView(value.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Profile represents the per user profile
type Profile struct {
	UserID  string  `dynamodbav:"user_id" validate:"required"`
	Site    *string `dynamodbav:"site"`
	Faculty *string `dynamodbav:"faculty"`
	Program *string `dynamodbav:"program"`
	Email   *string `dynamodbav:"email,omitempty"`
}

func (Profile) Kind() Kind { return KindProfile }

func (p Profile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("profile: missing user id")
	}
	return nil
}

// Calendar represents a users personal calendar
type Calendar struct {
	Name          string `dynamodbav:"name" validate:"required"`
	Slug          string `dynamodbav:"slug" validate:"required"`
	DefaultView   View   `dynamodbav:"defaultView" validate:"required"`
	RequireConfig bool   `dynamodbav:"requireConfig"`
	Profile       string `dynamodbav:"profile" validate:"required"`
}

func (Calendar) Kind() Kind { return KindCalendar }

func (c Calendar) Validate() error {
	if !c.DefaultView.Valid() {
		return fmt.Errorf("calendar: unknown default view %q", c.DefaultView)
	}
	return nil
}

// CalendarSlug returns the slug of the personal calendar for a user.
func CalendarSlug(userID string) string {
	return fmt.Sprintf("personal-%s", userID)
}

// Etiquette is a colored tag events are filed under
type Etiquette struct {
	Name     string `dynamodbav:"name" validate:"required"`
	Color    Color  `dynamodbav:"color" validate:"required"`
	IsActive bool   `dynamodbav:"isActive"`
	Calendar string `dynamodbav:"calendar" validate:"required"`
}

func (Etiquette) Kind() Kind { return KindEtiquette }

func (e Etiquette) Validate() error {
	if !e.Color.Valid() {
		return fmt.Errorf("etiquette %q: unknown color %q", e.Name, e.Color)
	}
	return nil
}

// Event is a scheduled calendar item. Start and End hold wire formatted
// timestamps.
type Event struct {
	Title       string  `dynamodbav:"title" validate:"required"`
	Description string  `dynamodbav:"description"`
	Start       string  `dynamodbav:"start" validate:"required"`
	End         string  `dynamodbav:"end" validate:"required"`
	AllDay      bool    `dynamodbav:"all_day"`
	Location    *string `dynamodbav:"location,omitempty"`
	Calendar    string  `dynamodbav:"calendar" validate:"required"`
	Etiquette   string  `dynamodbav:"etiquette" validate:"required"`
}

func (Event) Kind() Kind { return KindEvent }

func (e Event) Validate() error {
	start, err := ParseTime(e.Start)
	if err != nil {
		return fmt.Errorf("event %q: invalid start: %v", e.Title, err)
	}
	end, err := ParseTime(e.End)
	if err != nil {
		return fmt.Errorf("event %q: invalid end: %v", e.Title, err)
	}
	if end.Before(start) {
		return fmt.Errorf("event %q: ends before it starts", e.Title)
	}
	return nil
}

// OwnerPermissions returns the permissions granting a user full access to a
// record.
func OwnerPermissions(userID string) []string {
	role := fmt.Sprintf("user:%s", userID)
	return []string{
		fmt.Sprintf("read(%q)", role),
		fmt.Sprintf("update(%q)", role),
		fmt.Sprintf("delete(%q)", role),
	}
}

package setup

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var presetFiles embed.FS

const DefaultPreset = "basic"

// Anchor selects the day an event template counts its day offset from.
type Anchor string

const (
	AnchorToday Anchor = "today"
	AnchorWeek  Anchor = "week"
)

// Preset is the seed data created for every new user.
type Preset struct {
	Name       string              `yaml:"name"`
	Calendar   CalendarTemplate    `yaml:"calendar"`
	Etiquettes []EtiquetteTemplate `yaml:"etiquettes"`
	Events     []EventTemplate     `yaml:"events"`
}

type CalendarTemplate struct {
	Name        string `yaml:"name"`
	DefaultView View   `yaml:"default_view"`
}

type EtiquetteTemplate struct {
	Name  string `yaml:"name"`
	Color Color  `yaml:"color"`
}

// EventTemplate describes a sample event relative to the provisioning time.
// Etiquette is the index of the etiquette the event is filed under.
type EventTemplate struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Anchor      Anchor `yaml:"anchor"`
	Day         int    `yaml:"day"`
	Hour        int    `yaml:"hour"`
	Minute      int    `yaml:"minute"`
	Duration    int    `yaml:"duration"`
	AllDay      bool   `yaml:"all_day"`
	Location    string `yaml:"location"`
	Etiquette   int    `yaml:"etiquette"`
}

// LoadPreset returns the embedded preset with the passed name.
func LoadPreset(name string) (*Preset, error) {
	if name == "" {
		name = DefaultPreset
	}
	data, err := presetFiles.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return ParsePreset(data)
}

// PresetNames lists the embedded presets.
func PresetNames() []string {
	entries, err := presetFiles.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := []string{}
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// ParsePreset decodes and validates a YAML preset.
func ParsePreset(data []byte) (*Preset, error) {
	preset := &Preset{}
	if err := yaml.Unmarshal(data, preset); err != nil {
		return nil, err
	}
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	return preset, nil
}

func (p *Preset) Validate() error {
	if p.Calendar.Name == "" {
		return fmt.Errorf("preset %s: calendar name is required", p.Name)
	}
	if p.Calendar.DefaultView == "" {
		p.Calendar.DefaultView = ViewMonth
	}
	if len(p.Etiquettes) == 0 {
		return fmt.Errorf("preset %s: at least one etiquette is required", p.Name)
	}
	if len(p.Events) == 0 {
		return fmt.Errorf("preset %s: at least one event is required", p.Name)
	}
	for i, e := range p.Events {
		if e.Etiquette < 0 || e.Etiquette >= len(p.Etiquettes) {
			return fmt.Errorf("preset %s: event %d references etiquette %d of %d", p.Name, i, e.Etiquette, len(p.Etiquettes))
		}
		switch e.Anchor {
		case "":
			p.Events[i].Anchor = AnchorToday
		case AnchorToday, AnchorWeek:
		default:
			return fmt.Errorf("preset %s: event %d has unknown anchor %q", p.Name, i, e.Anchor)
		}
		if e.Hour < 0 || e.Hour > 23 || e.Minute < 0 || e.Minute > 59 {
			return fmt.Errorf("preset %s: event %d has invalid time %02d:%02d", p.Name, i, e.Hour, e.Minute)
		}
		if e.Duration < 0 {
			return fmt.Errorf("preset %s: event %d has negative duration", p.Name, i)
		}
	}
	return nil
}

// CalendarFor returns the calendar record of the preset for a user.
func (p *Preset) CalendarFor(userID, profileID string) Calendar {
	return Calendar{
		Name:          p.Calendar.Name,
		Slug:          CalendarSlug(userID),
		DefaultView:   p.Calendar.DefaultView,
		RequireConfig: false,
		Profile:       profileID,
	}
}

// EtiquettesFor returns the etiquette records of the preset.
func (p *Preset) EtiquettesFor(calendarID string) []Etiquette {
	etiquettes := make([]Etiquette, 0, len(p.Etiquettes))
	for _, t := range p.Etiquettes {
		etiquettes = append(etiquettes, Etiquette{
			Name:     t.Name,
			Color:    t.Color,
			IsActive: true,
			Calendar: calendarID,
		})
	}
	return etiquettes
}

// EventsFor returns the event records of the preset. etiquetteIDs must be
// in the same order as the preset etiquettes.
func (p *Preset) EventsFor(s Scheduler, now time.Time, calendarID string, etiquetteIDs []string) ([]Event, error) {
	if len(etiquetteIDs) != len(p.Etiquettes) {
		return nil, fmt.Errorf("preset %s: have %d etiquette ids for %d etiquettes", p.Name, len(etiquetteIDs), len(p.Etiquettes))
	}

	events := make([]Event, 0, len(p.Events))
	for _, t := range p.Events {
		events = append(events, t.Build(s, now, calendarID, etiquetteIDs[t.Etiquette]))
	}
	return events, nil
}

// Build returns the event record for the template.
func (t EventTemplate) Build(s Scheduler, now time.Time, calendarID, etiquetteID string) Event {
	hour, minute := t.Hour, t.Minute
	if t.AllDay {
		hour, minute = 0, 0
	}

	var start time.Time
	if t.Anchor == AnchorWeek {
		start = s.ThisWeek(now, t.Day, hour, minute)
	} else {
		start = s.At(now, t.Day, hour, minute)
	}

	end := start
	if !t.AllDay {
		end = Span(start, t.Duration)
	}

	event := Event{
		Title:       t.Title,
		Description: t.Description,
		Start:       FormatTime(start),
		End:         FormatTime(end),
		AllDay:      t.AllDay,
		Calendar:    calendarID,
		Etiquette:   etiquetteID,
	}
	if t.Location != "" {
		event.Location = stringPtr(t.Location)
	}
	return event
}

func stringPtr(s string) *string {
	return &s
}

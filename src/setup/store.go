package setup

import (
	"context"
	"fmt"
)

// Request is a single record creation submitted to a RecordStore. Token is a
// client supplied correlation value the store echoes back on success.
type Request struct {
	Kind        Kind
	Token       string
	Record      Record
	Permissions []string
}

// Created is the result of a successful Request.
type Created struct {
	ID    string
	Token string
}

// RecordStore creates records and assigns their ids.
type RecordStore interface {
	Create(ctx context.Context, request Request) (Created, error)
}

// Tables maps each record kind to its collection inside a database.
type Tables struct {
	Database   string
	Profiles   string
	Calendars  string
	Etiquettes string
	Events     string
}

// DefaultTables returns the collection ids used when none are configured.
func DefaultTables(database string) Tables {
	return Tables{
		Database:   database,
		Profiles:   "profiles",
		Calendars:  "calendars",
		Etiquettes: "etiquettes",
		Events:     "events",
	}
}

// Collection returns the collection id for the kind.
func (t Tables) Collection(kind Kind) string {
	switch kind {
	case KindProfile:
		return t.Profiles
	case KindCalendar:
		return t.Calendars
	case KindEtiquette:
		return t.Etiquettes
	case KindEvent:
		return t.Events
	default:
		return ""
	}
}

// TableName returns the fully qualified table name for the kind.
func (t Tables) TableName(kind Kind) string {
	return fmt.Sprintf("%s.%s", t.Database, t.Collection(kind))
}

package setup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/maddiesch/serverless"
)

// Input is a single user setup request.
type Input struct {
	UserID string
	// Email skips the identity lookup when already known to the trigger.
	Email string
}

// Summary describes the records created by a successful run.
type Summary struct {
	UserID          string
	ProfileID       string
	CalendarID      string
	EtiquetteIDs    []string
	EventIDs        []string
	EtiquettesCount int
	EventsCount     int
}

// Provisioner seeds the default records for a new user.
type Provisioner struct {
	Store     RecordStore
	Directory Directory
	Writer    Writer
	Preset    *Preset
	Scheduler Scheduler
	Now       func() time.Time
}

// Run creates the profile, calendar, etiquettes and events for a user. Records
// created before a failing step are left in place.
func (p *Provisioner) Run(ctx context.Context, input Input) (*Summary, error) {
	if input.UserID == "" {
		return nil, missingUserID()
	}
	userID := input.UserID

	serverless.Log("Setting up user ", userID)

	profile := Profile{UserID: userID}
	if input.Email != "" {
		profile.Email = stringPtr(input.Email)
	} else if p.Directory != nil {
		contact, err := p.Directory.LookupUser(ctx, userID)
		if err != nil {
			return nil, identityLookupFailed(userID, err)
		}
		if contact.Email != "" {
			profile.Email = stringPtr(contact.Email)
		}
	}

	profileID, err := p.create(ctx, Request{Kind: KindProfile, Record: profile})
	if err != nil {
		return nil, err
	}
	serverless.Log("Created profile ", profileID)

	calendarID, err := p.create(ctx, Request{Kind: KindCalendar, Record: p.Preset.CalendarFor(userID, profileID)})
	if err != nil {
		return nil, err
	}
	serverless.Log("Created calendar ", calendarID)

	permissions := OwnerPermissions(userID)

	etiquettes := p.Preset.EtiquettesFor(calendarID)
	etiquetteRequests := make([]Request, 0, len(etiquettes))
	for _, e := range etiquettes {
		etiquetteRequests = append(etiquetteRequests, Request{Kind: KindEtiquette, Record: e, Permissions: permissions})
	}
	createdEtiquettes, err := p.Writer.CreateAll(ctx, p.Store, etiquetteRequests)
	if err != nil {
		return nil, err
	}
	etiquetteIDs := ids(createdEtiquettes)
	for i, e := range etiquettes {
		serverless.Log("Created etiquette ", e.Name, " ", etiquetteIDs[i])
	}

	events, err := p.Preset.EventsFor(p.Scheduler, p.now(), calendarID, etiquetteIDs)
	if err != nil {
		return nil, storeWriteFailed(KindEvent, err)
	}
	eventRequests := make([]Request, 0, len(events))
	for _, e := range events {
		eventRequests = append(eventRequests, Request{Kind: KindEvent, Record: e, Permissions: permissions})
	}
	createdEvents, err := p.Writer.CreateAll(ctx, p.Store, eventRequests)
	if err != nil {
		return nil, err
	}
	eventIDs := ids(createdEvents)
	for _, e := range events {
		serverless.Log("Created event ", e.Title)
	}

	serverless.Log("User ", userID, " set up")

	return &Summary{
		UserID:          userID,
		ProfileID:       profileID,
		CalendarID:      calendarID,
		EtiquetteIDs:    etiquetteIDs,
		EventIDs:        eventIDs,
		EtiquettesCount: len(etiquetteIDs),
		EventsCount:     len(eventIDs),
	}, nil
}

func (p *Provisioner) create(ctx context.Context, request Request) (string, error) {
	created, err := p.Store.Create(ctx, request)
	if err != nil {
		return "", storeWriteFailed(request.Kind, err)
	}
	return created.ID, nil
}

func (p *Provisioner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func ids(created []Created) []string {
	out := make([]string, 0, len(created))
	for _, c := range created {
		out = append(out, c.ID)
	}
	return out
}

// TriggerEvent is the inbound event payload. The platform sends the new user
// either as userId or as the user document itself.
type TriggerEvent struct {
	UserID string `json:"userId"`
	ID     string `json:"$id"`
	Email  string `json:"email"`
}

// ExtractInput decodes a trigger payload. An empty body is treated as an
// empty event.
func ExtractInput(body []byte) (Input, error) {
	event := TriggerEvent{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &event); err != nil {
			return Input{}, err
		}
	}

	userID := event.UserID
	if userID == "" {
		userID = event.ID
	}
	if userID == "" {
		return Input{}, missingUserID()
	}

	return Input{UserID: userID, Email: event.Email}, nil
}

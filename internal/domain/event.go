package domain

import (
	"context"
	"time"
)

// Event represents a published event with a fixed registration capacity.
// swagger:model Event
type Event struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	ShortDescription     string    `json:"short_description"`
	Description          string    `json:"description"`
	Category             string    `json:"category,omitempty"`
	Venue                string    `json:"venue"`
	Date                 time.Time `json:"date"`
	StartTime            string    `json:"time"`
	PosterURL            *string   `json:"poster_url,omitempty"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	MaxRegistrations     int       `json:"max_registrations"`
	CurrentRegistrations int       `json:"current_registrations"`
	CreatedBy            string    `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SeatsAvailable returns the number of seats still open for the event.
func (e *Event) SeatsAvailable() int {
	n := e.MaxRegistrations - e.CurrentRegistrations
	if n < 0 {
		return 0
	}
	return n
}

// RegistrationOpen reports whether the registration deadline has not passed
// at the given instant. The deadline is a date; registration stays open
// through the end of that day.
func (e *Event) RegistrationOpen(now time.Time) bool {
	cutoff := e.RegistrationDeadline.AddDate(0, 0, 1)
	return now.Before(cutoff)
}

// EventUpdate is a partial field set for updating an event. Nil fields are
// left unchanged.
type EventUpdate struct {
	Title                *string
	ShortDescription     *string
	Description          *string
	Category             *string
	Venue                *string
	Date                 *time.Time
	StartTime            *string
	PosterURL            *string
	RegistrationDeadline *time.Time
	MaxRegistrations     *int
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListUpcoming returns events dated on or after from, ascending by date.
	ListUpcoming(ctx context.Context, from time.Time) ([]*Event, error)
	// Update applies the non-nil fields. It returns ErrValidation if the new
	// max_registrations would fall below the event's current count.
	Update(ctx context.Context, id string, fields EventUpdate) (*Event, error)
	// Delete removes the event and all of its registrations atomically.
	Delete(ctx context.Context, id string) error
}

// EventInput holds the fields required to create an event.
type EventInput struct {
	Title                string
	ShortDescription     string
	Description          string
	Category             string
	Venue                string
	Date                 time.Time
	StartTime            string
	RegistrationDeadline *time.Time
	MaxRegistrations     int
	CreatedBy            string
}

// PosterUpload is an uploaded poster image to be stored alongside an event.
type PosterUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CatalogService defines the event catalog surface: public reads plus
// administrative mutations.
type CatalogService interface {
	ListUpcoming(ctx context.Context) ([]*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, input EventInput, poster *PosterUpload) (*Event, error)
	Update(ctx context.Context, id string, fields EventUpdate, poster *PosterUpload) (*Event, error)
	Delete(ctx context.Context, id string) error
}

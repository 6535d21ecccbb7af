package domain

import (
	"context"
	"time"
)

// Registration represents an admitted registration for an event.
// swagger:model Registration
type Registration struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	StudentName string    `json:"student_name"`
	RollNumber  string    `json:"register_number"`
	Department  string    `json:"department"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRegistration returns a new Registration. ID is set by the repository on
// admit.
func NewRegistration(eventID, studentName, rollNumber, department, email string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:     eventID,
		StudentName: studentName,
		RollNumber:  rollNumber,
		Department:  department,
		Email:       email,
		CreatedAt:   createdAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Admit claims a seat on the event and inserts the registration as one
	// atomic unit. It returns ErrEventFull when no seat remains and
	// ErrDuplicateRegistration when the (event, email) pair already exists;
	// in either case no effect is committed.
	Admit(ctx context.Context, reg *Registration) error
	// ListByEventID returns the event's registrations, oldest first.
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// RegistrationInput holds the registrant-supplied fields of a registration
// attempt.
type RegistrationInput struct {
	StudentName string
	RollNumber  string
	Department  string
	Email       string
}

// AdmissionService decides whether a registration attempt is accepted
// against the event's capacity and duplicate rules.
type AdmissionService interface {
	// Register admits or rejects the attempt. Rejections are ErrNotFound,
	// ErrRegistrationClosed, ErrEventFull, or ErrDuplicateRegistration.
	Register(ctx context.Context, eventID string, input RegistrationInput) (*Registration, error)
}

// RosterService serves the administrative view of an event's registrants.
type RosterService interface {
	List(ctx context.Context, eventID string) ([]*Registration, error)
	// ExportCSV renders the event's registrations as RFC 4180 CSV.
	ExportCSV(ctx context.Context, eventID string) ([]byte, error)
}

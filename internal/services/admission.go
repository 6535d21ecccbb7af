package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"campusevents/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type admissionService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	mailer           domain.Mailer
	logger           *slog.Logger
	now              func() time.Time
}

// NewAdmissionService creates an AdmissionService. The mailer is used for
// best-effort confirmation emails and may be a noop implementation.
func NewAdmissionService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	mailer domain.Mailer,
	logger *slog.Logger,
) domain.AdmissionService {
	return &admissionService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		mailer:           mailer,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *admissionService) Register(ctx context.Context, eventID string, input domain.RegistrationInput) (*domain.Registration, error) {
	input.StudentName = strings.TrimSpace(input.StudentName)
	input.RollNumber = strings.TrimSpace(input.RollNumber)
	input.Department = strings.TrimSpace(input.Department)
	input.Email = strings.TrimSpace(input.Email)
	if input.StudentName == "" || input.RollNumber == "" || input.Department == "" {
		return nil, fmt.Errorf("%w: name, register number, and department are required", domain.ErrValidation)
	}
	if !emailRegexp.MatchString(input.Email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := s.now()
	if !event.RegistrationOpen(now) {
		return nil, domain.ErrRegistrationClosed
	}

	// Capacity and duplicate checks happen inside the repository's admit
	// transaction; checking them here first would just reopen the races.
	reg := domain.NewRegistration(eventID, input.StudentName, input.RollNumber, input.Department, input.Email, now)
	if err := s.registrationRepo.Admit(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrEventFull) || errors.Is(err, domain.ErrDuplicateRegistration) {
			return nil, err
		}
		return nil, fmt.Errorf("admit registration: %w", err)
	}

	s.sendConfirmation(ctx, event, reg)
	return reg, nil
}

// sendConfirmation emails the registrant. Failures are logged and never
// surface to the caller; the admission is already committed.
func (s *admissionService) sendConfirmation(ctx context.Context, event *domain.Event, reg *domain.Registration) {
	if s.mailer == nil {
		return
	}
	subject := fmt.Sprintf("Registration confirmed: %s", event.Title)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour registration for %s on %s at %s is confirmed.\n\nSee you there!",
		reg.StudentName, event.Title, event.Date.Format("January 2, 2006"), event.Venue,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your registration for <strong>%s</strong> on %s at %s is confirmed.</p><p>See you there!</p>",
		reg.StudentName, event.Title, event.Date.Format("January 2, 2006"), event.Venue,
	)
	if err := s.mailer.Send(reg.Email, subject, html, text); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed",
			"event_id", event.ID, "registration_id", reg.ID, "err", err)
	}
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

// csvHeader matches the columns the admin dashboard has always exported.
var csvHeader = []string{"Name", "Roll Number", "Department", "Email", "Registered At"}

type rosterService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
}

// NewRosterService creates a RosterService with the given repositories.
func NewRosterService(eventRepo domain.EventRepository, registrationRepo domain.RegistrationRepository) domain.RosterService {
	return &rosterService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *rosterService) List(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

// ExportCSV renders the event's registrations as CSV. encoding/csv applies
// RFC 4180 quoting, so commas and newlines inside fields survive the trip.
func (s *rosterService) ExportCSV(ctx context.Context, eventID string) ([]byte, error) {
	regs, err := s.List(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, reg := range regs {
		record := []string{
			reg.StudentName,
			reg.RollNumber,
			reg.Department,
			reg.Email,
			reg.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

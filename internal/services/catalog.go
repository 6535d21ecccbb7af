package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type catalogService struct {
	eventRepo   domain.EventRepository
	posterStore domain.PosterStore
	now         func() time.Time
}

// NewCatalogService creates a CatalogService with the given repository and
// poster store.
func NewCatalogService(eventRepo domain.EventRepository, posterStore domain.PosterStore) domain.CatalogService {
	return &catalogService{
		eventRepo:   eventRepo,
		posterStore: posterStore,
		now:         time.Now,
	}
}

func (s *catalogService) ListUpcoming(ctx context.Context) ([]*domain.Event, error) {
	// "Upcoming" means dated today or later.
	today := s.now().Truncate(24 * time.Hour)
	events, err := s.eventRepo.ListUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *catalogService) Create(ctx context.Context, input domain.EventInput, poster *domain.PosterUpload) (*domain.Event, error) {
	if errs := validateEventInput(input); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}

	deadline := input.Date
	if input.RegistrationDeadline != nil {
		deadline = *input.RegistrationDeadline
	}

	now := s.now()
	event := &domain.Event{
		Title:                strings.TrimSpace(input.Title),
		ShortDescription:     strings.TrimSpace(input.ShortDescription),
		Description:          input.Description,
		Category:             strings.TrimSpace(input.Category),
		Venue:                strings.TrimSpace(input.Venue),
		Date:                 input.Date,
		StartTime:            input.StartTime,
		RegistrationDeadline: deadline,
		MaxRegistrations:     input.MaxRegistrations,
		CreatedBy:            input.CreatedBy,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if poster != nil {
		url, err := s.uploadPoster(ctx, poster)
		if err != nil {
			return nil, err
		}
		event.PosterURL = &url
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *catalogService) Update(ctx context.Context, id string, fields domain.EventUpdate, poster *domain.PosterUpload) (*domain.Event, error) {
	if fields.MaxRegistrations != nil && *fields.MaxRegistrations < 1 {
		return nil, fmt.Errorf("%w: max_registrations must be at least 1", domain.ErrValidation)
	}
	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}

	if poster != nil {
		url, err := s.uploadPoster(ctx, poster)
		if err != nil {
			return nil, err
		}
		fields.PosterURL = &url
	}

	// The original admin form re-derives the deadline from the event date.
	if fields.Date != nil && fields.RegistrationDeadline == nil {
		fields.RegistrationDeadline = fields.Date
	}

	event, err := s.eventRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *catalogService) uploadPoster(ctx context.Context, poster *domain.PosterUpload) (string, error) {
	// Timestamped key keeps uploads unique without coordinating names.
	key := fmt.Sprintf("%d%s", s.now().UnixNano(), filepath.Ext(poster.Filename))
	url, err := s.posterStore.Put(ctx, key, poster.ContentType, bytes.NewReader(poster.Data))
	if err != nil {
		return "", fmt.Errorf("upload poster: %w", err)
	}
	return url, nil
}

func validateEventInput(input domain.EventInput) []string {
	var errs []string
	if strings.TrimSpace(input.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(input.ShortDescription) == "" {
		errs = append(errs, "short_description is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(input.Venue) == "" {
		errs = append(errs, "venue is required")
	}
	if input.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(input.StartTime) == "" {
		errs = append(errs, "time is required")
	}
	if input.MaxRegistrations < 1 {
		errs = append(errs, "max_registrations must be at least 1")
	}
	return errs
}

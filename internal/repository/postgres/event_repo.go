package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

const eventColumns = `id, title, short_description, description, category, venue, date, start_time,
		poster_url, registration_deadline, max_registrations, current_registrations,
		created_by, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var categoryNull, posterNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.ShortDescription, &e.Description, &categoryNull, &e.Venue,
		&e.Date, &e.StartTime, &posterNull, &e.RegistrationDeadline,
		&e.MaxRegistrations, &e.CurrentRegistrations,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryNull.Valid {
		e.Category = categoryNull.String
	}
	if posterNull.Valid {
		e.PosterURL = &posterNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, short_description, description, category, venue, date, start_time,
			poster_url, registration_deadline, max_registrations, current_registrations,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, 0, $11, $12, $13)
		RETURNING id
	`
	var poster sql.NullString
	if e.PosterURL != nil {
		poster = sql.NullString{String: *e.PosterURL, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.ShortDescription, e.Description, e.Category, e.Venue, e.Date, e.StartTime,
		poster, e.RegistrationDeadline, e.MaxRegistrations,
		e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE date >= $1
		ORDER BY date ASC, start_time ASC
	`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, fields domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if fields.Title != nil {
		add("title", *fields.Title)
	}
	if fields.ShortDescription != nil {
		add("short_description", *fields.ShortDescription)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}
	if fields.Category != nil {
		add("category", *fields.Category)
	}
	if fields.Venue != nil {
		add("venue", *fields.Venue)
	}
	if fields.Date != nil {
		add("date", *fields.Date)
	}
	if fields.StartTime != nil {
		add("start_time", *fields.StartTime)
	}
	if fields.PosterURL != nil {
		add("poster_url", *fields.PosterURL)
	}
	if fields.RegistrationDeadline != nil {
		add("registration_deadline", *fields.RegistrationDeadline)
	}
	if fields.MaxRegistrations != nil {
		add("max_registrations", *fields.MaxRegistrations)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}

	// The capacity floor is checked inside the UPDATE's WHERE clause so a
	// concurrent admission cannot slip between a read and the write.
	where := fmt.Sprintf("id = $%d", n)
	args = append(args, id)
	if fields.MaxRegistrations != nil {
		n++
		where += fmt.Sprintf(" AND current_registrations <= $%d", n)
		args = append(args, *fields.MaxRegistrations)
	}
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE %s
		RETURNING %s
	`, strings.Join(setClauses, ", "), where, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the event does not exist or the new capacity is below
			// the current count; look again to tell the two apart.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, fmt.Errorf("%w: max_registrations below current registration count", domain.ErrValidation)
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Registrations first; both deletes commit together or not at all.
	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

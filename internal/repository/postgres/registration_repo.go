package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique constraint (here: one registration per (event_id, email)).
const uniqueViolation = "23505"

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// Admit claims a seat and inserts the registration in a single transaction.
// The conditional UPDATE serializes seat claims on the event row, so two
// concurrent admits can never push the count past max_registrations; the
// unique constraint on (event_id, email) closes the duplicate race.
func (r *registrationRepository) Admit(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE events
		SET current_registrations = current_registrations + 1, updated_at = NOW()
		WHERE id = $1 AND current_registrations < max_registrations
	`, reg.EventID)
	if err != nil {
		return fmt.Errorf("claim seat: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim seat: %w", err)
	}
	if rows == 0 {
		return domain.ErrEventFull
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (event_id, student_name, register_number, department, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, reg.EventID, reg.StudentName, reg.RollNumber, reg.Department, reg.Email, reg.CreatedAt).
		Scan(&reg.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateRegistration
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	return tx.Commit()
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `
		SELECT id, event_id, student_name, register_number, department, email, created_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.StudentName, &reg.RollNumber, &reg.Department, &reg.Email, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).
		Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAdminUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "email", "name", "password_hash", "salt", "created_at", "updated_at"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, salt, created_at, updated_at`).
			WithArgs("admin@x.edu").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("adm-1", "admin@x.edu", "Admin", "hash", "salt", now, now))

		repo := NewAdminUserRepository(db)
		u, err := repo.GetByEmail(ctx, "admin@x.edu")
		require.NoError(t, err)
		require.Equal(t, "adm-1", u.ID)
		require.Equal(t, "admin@x.edu", u.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, salt, created_at, updated_at`).
			WithArgs("unknown@x.edu").
			WillReturnError(sql.ErrNoRows)

		repo := NewAdminUserRepository(db)
		_, err = repo.GetByEmail(ctx, "unknown@x.edu")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "email", "name", "password_hash", "salt", "created_at", "updated_at"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, salt, created_at, updated_at`).
			WithArgs("adm-1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("adm-1", "admin@x.edu", "Admin", "hash", "salt", now, now))

		repo := NewAdminUserRepository(db)
		u, err := repo.GetByID(ctx, "adm-1")
		require.NoError(t, err)
		require.Equal(t, "Admin", u.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, salt, created_at, updated_at`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewAdminUserRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

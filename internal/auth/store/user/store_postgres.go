package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lahu/internal/auth/models"
	"lahu/internal/bloodtype"
	"lahu/internal/platform/postgres"
	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
	txcontext "lahu/pkg/platform/tx"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, email, password_hash, name, phone, blood_type, location, role,
	is_available, is_active, total_donations, last_donation, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(user.ID), user.Email, user.PasswordHash, user.Name, user.Phone,
		string(user.BloodType), user.Location, string(user.Role),
		user.IsAvailable, user.IsActive, user.TotalDonations, user.LastDonation,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, sentinel.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(userID))
	return scanUser(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *PostgresStore) Update(ctx context.Context, user *models.User) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE users SET
			name = $2, phone = $3, location = $4, is_available = $5,
			is_active = $6, role = $7, updated_at = $8
		WHERE id = $1`,
		uuid.UUID(user.ID), user.Name, user.Phone, user.Location, user.IsAvailable,
		user.IsActive, string(user.Role), user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectOneRow(res)
}

// RecordDonation increments the counter in a single statement so concurrent
// completions never lose an update.
func (s *PostgresStore) RecordDonation(ctx context.Context, userID id.UserID, at, now time.Time) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE users SET
			total_donations = total_donations + 1,
			last_donation = GREATEST(COALESCE(last_donation, $2), $2),
			updated_at = $3
		WHERE id = $1`,
		uuid.UUID(userID), at, now,
	)
	if err != nil {
		return fmt.Errorf("record donation: %w", err)
	}
	return expectOneRow(res)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.User, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var (
		u            models.User
		rawID        uuid.UUID
		bt, role     string
		lastDonation sql.NullTime
	)
	err := row.Scan(&rawID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &bt, &u.Location, &role,
		&u.IsAvailable, &u.IsActive, &u.TotalDonations, &lastDonation, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(rawID)
	u.BloodType = bloodtype.BloodType(bt)
	u.Role = models.Role(role)
	if lastDonation.Valid {
		t := lastDonation.Time
		u.LastDonation = &t
	}
	return &u, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

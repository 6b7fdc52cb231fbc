package bloodrequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lahu/internal/bloodtype"
	"lahu/internal/platform/postgres"
	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
)

// PostgresStore persists blood requests in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requestColumns = `id, patient_name, blood_type, units_needed, hospital, contact, urgency, status, location, email, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, req *Request) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO blood_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		uuid.UUID(req.ID), req.PatientName, string(req.BloodType), req.UnitsNeeded, req.Hospital,
		req.Contact, string(req.Urgency), string(req.Status), req.Location, req.Email,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create blood request: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, requestID id.BloodRequestID) (*Request, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM blood_requests WHERE id = $1`, uuid.UUID(requestID))
	return scanRequest(row)
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Request, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.BloodType != nil {
		args = append(args, string(*filter.BloodType))
		clauses = append(clauses, fmt.Sprintf("blood_type = $%d", len(args)))
	}
	query := `SELECT ` + requestColumns + ` FROM blood_requests`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blood requests: %w", err)
	}
	defer rows.Close()

	out := make([]*Request, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blood requests: %w", err)
	}
	return out, nil
}

// UpdateStatus guards the transition with the expected current status so
// concurrent updates cannot both succeed.
func (s *PostgresStore) UpdateStatus(ctx context.Context, requestID id.BloodRequestID, from, to Status, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE blood_requests SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		uuid.UUID(requestID), string(from), string(to), at,
	)
	if err != nil {
		return fmt.Errorf("update blood request status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update blood request status: %w", err)
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM blood_requests WHERE id = $1)`, uuid.UUID(requestID),
	).Scan(&exists); err != nil {
		return fmt.Errorf("check blood request: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrInvalidState
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*Request, error) {
	var (
		r                      Request
		rawID                  uuid.UUID
		bt, urgency, statusRaw string
	)
	if err := row.Scan(&rawID, &r.PatientName, &bt, &r.UnitsNeeded, &r.Hospital, &r.Contact,
		&urgency, &statusRaw, &r.Location, &r.Email, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan blood request: %w", err)
	}
	r.ID = id.BloodRequestID(rawID)
	r.BloodType = bloodtype.BloodType(bt)
	r.Urgency = Urgency(urgency)
	r.Status = Status(statusRaw)
	return &r, nil
}

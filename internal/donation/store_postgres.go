package donation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lahu/internal/platform/postgres"
	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
	txcontext "lahu/pkg/platform/tx"
)

// PostgresStore persists donations in PostgreSQL. Statements join the
// transaction carried in ctx, if any.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const donationColumns = `id, donor_id, date, location, status, recipient, notes, created_at`

func (s *PostgresStore) Create(ctx context.Context, d *Donation) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `INSERT INTO donations (`+donationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(d.ID), uuid.UUID(d.DonorID), d.Date, d.Location, string(d.Status),
		d.Recipient, d.Notes, d.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, donationID id.DonationID) (*Donation, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, uuid.UUID(donationID))
	return scanDonation(row)
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Donation, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.DonorID != nil {
		args = append(args, uuid.UUID(*filter.DonorID))
		clauses = append(clauses, fmt.Sprintf("donor_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + donationColumns + ` FROM donations`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	out := make([]*Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, donationID id.DonationID, from, to Status) error {
	exec := txcontext.Exec(ctx, s.db)
	res, err := exec.ExecContext(ctx,
		`UPDATE donations SET status = $3 WHERE id = $1 AND status = $2`,
		uuid.UUID(donationID), string(from), string(to),
	)
	if err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := exec.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM donations WHERE id = $1)`, uuid.UUID(donationID),
	).Scan(&exists); err != nil {
		return fmt.Errorf("check donation: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrInvalidState
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDonation(row scanner) (*Donation, error) {
	var (
		d              Donation
		rawID, donorID uuid.UUID
		statusRaw      string
	)
	if err := row.Scan(&rawID, &donorID, &d.Date, &d.Location, &statusRaw, &d.Recipient, &d.Notes, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan donation: %w", err)
	}
	d.ID = id.DonationID(rawID)
	d.DonorID = id.UserID(donorID)
	d.Status = Status(statusRaw)
	return &d, nil
}

package donor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lahu/internal/bloodtype"
	"lahu/internal/platform/postgres"
	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
)

// PostgresStore persists the donor registry in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const donorColumns = `id, name, blood_type, age, contact, email, location, last_donation, created_at`

func (s *PostgresStore) Create(ctx context.Context, donor *Donor) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO donors (`+donorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(donor.ID), donor.Name, string(donor.BloodType), donor.Age, donor.Contact,
		donor.Email, donor.Location, donor.LastDonation, donor.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create donor: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, donorID id.DonorID) (*Donor, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+donorColumns+` FROM donors WHERE id = $1`, uuid.UUID(donorID))
	d, err := scanDonor(row)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List filters in SQL: blood types through a text array parameter and
// location as an escaped ILIKE pattern.
func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Donor, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.BloodTypes != nil {
		args = append(args, pq.Array(bloodtype.Strings(filter.BloodTypes)))
		clauses = append(clauses, fmt.Sprintf("blood_type = ANY($%d)", len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+escapeLike(filter.Location)+"%")
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", len(args)))
	}

	query := `SELECT ` + donorColumns + ` FROM donors`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()

	donors := make([]*Donor, 0)
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donors: %w", err)
	}
	return donors, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDonor(row scanner) (*Donor, error) {
	var (
		d            Donor
		rawID        uuid.UUID
		bt           string
		lastDonation sql.NullTime
	)
	if err := row.Scan(&rawID, &d.Name, &bt, &d.Age, &d.Contact, &d.Email, &d.Location, &lastDonation, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan donor: %w", err)
	}
	d.ID = id.DonorID(rawID)
	d.BloodType = bloodtype.BloodType(bt)
	if lastDonation.Valid {
		t := lastDonation.Time
		d.LastDonation = &t
	}
	return &d, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

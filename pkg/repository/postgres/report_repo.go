package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerpilot/careerpilot/pkg/report"
)

// ReportRepository implements report.Repository. Careers and the profile
// snapshot are stored as JSONB.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `id, user_id, date, name, education, careers, user_profile, created_at`

func (r *ReportRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]report.Report, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+reportColumns+`
FROM reports
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]report.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *ReportRepository) Create(ctx context.Context, rep report.Report) (report.Report, error) {
	careersJSON, err := json.Marshal(rep.Careers)
	if err != nil {
		return report.Report{}, fmt.Errorf("encode careers: %w", err)
	}
	profileJSON, err := json.Marshal(rep.Profile)
	if err != nil {
		return report.Report{}, fmt.Errorf("encode profile: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO reports (user_id, date, name, education, careers, user_profile)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+reportColumns+`
`, rep.UserID, rep.Date, rep.Name, rep.Education, careersJSON, profileJSON)
	return scanReport(row)
}

func (r *ReportRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (report.Report, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+reportColumns+`
FROM reports WHERE id = $1 AND user_id = $2
`, id, ownerID)
	rep, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return report.Report{}, report.ErrNotFound
	}
	return rep, err
}

func (r *ReportRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return report.ErrNotFound
	}
	return nil
}

func scanReport(row pgx.Row) (report.Report, error) {
	var (
		rep          report.Report
		careersBytes []byte
		profileBytes []byte
		created      time.Time
	)
	if err := row.Scan(&rep.ID, &rep.UserID, &rep.Date, &rep.Name, &rep.Education, &careersBytes, &profileBytes, &created); err != nil {
		return report.Report{}, err
	}
	if err := json.Unmarshal(careersBytes, &rep.Careers); err != nil {
		return report.Report{}, fmt.Errorf("decode careers of report %s: %w", rep.ID, err)
	}
	if err := json.Unmarshal(profileBytes, &rep.Profile); err != nil {
		return report.Report{}, fmt.Errorf("decode profile of report %s: %w", rep.ID, err)
	}
	rep.CreatedAt = created.UTC()
	return rep, nil
}

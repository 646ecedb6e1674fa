package sharing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifevault/lifevault/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const grantCols = `id, health_record_id, email, view_permission, download_permission,
	reshare_permission, expiration, created_at, updated_at`

func (r *repoPG) Upsert(ctx context.Context, g *Grant) error {
	g.ID = uuid.New()
	// On conflict the incoming id is discarded and the existing row keeps its
	// identity; RETURNING reports whichever id survived.
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO shared_access
			(id, health_record_id, email, view_permission, download_permission,
			 reshare_permission, expiration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email, health_record_id) DO UPDATE SET
			view_permission = EXCLUDED.view_permission,
			download_permission = EXCLUDED.download_permission,
			reshare_permission = EXCLUDED.reshare_permission,
			expiration = EXCLUDED.expiration,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		g.ID, g.HealthRecordID, g.Email, g.ViewPermission, g.DownloadPermission,
		g.ResharePermission, g.Expiration,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *repoPG) Revoke(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM shared_access WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListForRecord(ctx context.Context, recordID uuid.UUID) ([]Grant, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+grantCols+` FROM shared_access WHERE health_record_id = $1 ORDER BY created_at`,
		recordID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grants := []Grant{}
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, *g)
	}
	return grants, rows.Err()
}

func (r *repoPG) ListActiveForGrantee(ctx context.Context, email string, now time.Time) ([]SharedRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT sa.id, sa.health_record_id, sa.email, sa.view_permission,
			sa.download_permission, sa.reshare_permission, sa.expiration,
			sa.created_at, sa.updated_at,
			hr.id, hr.patient_id, hr.title, hr.type, hr.date, hr.provider,
			hr.content, hr.shared,
			p.name, p.email
		FROM shared_access sa
		JOIN health_record hr ON hr.id = sa.health_record_id
		JOIN patient p ON p.id = hr.patient_id
		WHERE sa.email = $1 AND (sa.expiration IS NULL OR sa.expiration > $2)
		ORDER BY sa.created_at DESC`,
		email, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shared := []SharedRecord{}
	for rows.Next() {
		var sr SharedRecord
		if err := rows.Scan(
			&sr.ID, &sr.HealthRecordID, &sr.Email, &sr.ViewPermission,
			&sr.DownloadPermission, &sr.ResharePermission, &sr.Expiration,
			&sr.CreatedAt, &sr.UpdatedAt,
			&sr.HealthRecord.ID, &sr.HealthRecord.PatientID, &sr.HealthRecord.Title,
			&sr.HealthRecord.Type, &sr.HealthRecord.Date, &sr.HealthRecord.Provider,
			&sr.HealthRecord.Content, &sr.HealthRecord.Shared,
			&sr.HealthRecord.Patient.Name, &sr.HealthRecord.Patient.Email,
		); err != nil {
			return nil, err
		}
		shared = append(shared, sr)
	}
	return shared, rows.Err()
}

func (r *repoPG) DeleteForRecord(ctx context.Context, recordID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM shared_access WHERE health_record_id = $1`, recordID)
	return err
}

func scanGrant(row pgx.Row) (*Grant, error) {
	var g Grant
	err := row.Scan(&g.ID, &g.HealthRecordID, &g.Email, &g.ViewPermission,
		&g.DownloadPermission, &g.ResharePermission, &g.Expiration,
		&g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

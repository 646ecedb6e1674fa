package record

import (
	"context"
	"errors"

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

const recordCols = `id, patient_id, title, type, date, provider, content, shared, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *HealthRecord) error {
	rec.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO health_record (id, patient_id, title, type, date, provider, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING shared, created_at, updated_at`,
		rec.ID, rec.PatientID, rec.Title, rec.Type, rec.Date, rec.Provider, rec.Content,
	).Scan(&rec.Shared, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range rec.Attachments {
		a := &rec.Attachments[i]
		a.ID = uuid.New()
		a.HealthRecordID = rec.ID
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO attachment (id, health_record_id, name, type, size, url)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, a.HealthRecordID, a.Name, a.Type, a.Size, a.URL,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*HealthRecord, error) {
	rec, err := scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+recordCols+` FROM health_record WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rec.Attachments, err = r.attachmentsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]HealthRecord, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+recordCols+` FROM health_record WHERE patient_id = $1 ORDER BY date DESC`,
		patientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []HealthRecord{}
	ids := []uuid.UUID{}
	for rows.Next() {
		var rec HealthRecord
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.Title, &rec.Type, &rec.Date,
			&rec.Provider, &rec.Content, &rec.Shared, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Attachments = []Attachment{}
		records = append(records, rec)
		ids = append(ids, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	attachments, err := r.attachmentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRecord := make(map[uuid.UUID][]Attachment, len(records))
	for _, a := range attachments {
		byRecord[a.HealthRecordID] = append(byRecord[a.HealthRecordID], a)
	}
	for i := range records {
		if as, ok := byRecord[records[i].ID]; ok {
			records[i].Attachments = as
		}
	}
	return records, nil
}

func (r *repoPG) Update(ctx context.Context, rec *HealthRecord) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE health_record
		SET title = $2, type = $3, date = $4, provider = $5, content = $6, shared = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		rec.ID, rec.Title, rec.Type, rec.Date, rec.Provider, rec.Content, rec.Shared,
	).Scan(&rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	c := r.conn(ctx)
	if _, err := c.Exec(ctx, `DELETE FROM attachment WHERE health_record_id = $1`, id); err != nil {
		return err
	}
	tag, err := c.Exec(ctx, `DELETE FROM health_record WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM health_record WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *repoPG) MarkShared(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE health_record SET shared = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) attachmentsFor(ctx context.Context, recordIDs []uuid.UUID) ([]Attachment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, health_record_id, name, type, size, url
		FROM attachment WHERE health_record_id = ANY($1)`,
		recordIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := []Attachment{}
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.HealthRecordID, &a.Name, &a.Type, &a.Size, &a.URL); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func scanRecord(row pgx.Row) (*HealthRecord, error) {
	var rec HealthRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.Title, &rec.Type, &rec.Date,
		&rec.Provider, &rec.Content, &rec.Shared, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.Attachments = []Attachment{}
	return &rec, nil
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

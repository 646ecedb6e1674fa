package record

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the record and its attachments. Callers wanting
	// atomicity run it inside a context transaction.
	Create(ctx context.Context, r *HealthRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*HealthRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]HealthRecord, error)
	Update(ctx context.Context, r *HealthRecord) error
	// Delete removes the record and its attachments.
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	MarkShared(ctx context.Context, id uuid.UUID) error
}

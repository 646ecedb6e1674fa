package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifevault/lifevault/internal/domain/sharing"
)

// GrantStore is the slice of the sharing ledger the record store needs to
// delete a record atomically and to report who it is shared with. Satisfied
// by sharing.Repository, wired in main.
type GrantStore interface {
	ListForRecord(ctx context.Context, recordID uuid.UUID) ([]sharing.Grant, error)
	DeleteForRecord(ctx context.Context, recordID uuid.UUID) error
}

// TxRunner executes fn inside a database transaction. Production wiring uses
// db.WithinTx over the pool; tests pass the identity runner.
type TxRunner func(ctx context.Context, fn func(context.Context) error) error

type Service struct {
	repo   Repository
	grants GrantStore
	runTx  TxRunner
}

func NewService(repo Repository, grants GrantStore, runTx TxRunner) *Service {
	return &Service{repo: repo, grants: grants, runTx: runTx}
}

type AttachmentInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type Input struct {
	PatientID   string            `json:"patientId"`
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Date        string            `json:"date"`
	Provider    string            `json:"provider"`
	Content     *string           `json:"content"`
	Attachments []AttachmentInput `json:"attachments"`
}

// UpdateInput is a partial record update; nil fields keep their stored value.
type UpdateInput struct {
	Title    *string `json:"title"`
	Type     *string `json:"type"`
	Date     *string `json:"date"`
	Provider *string `json:"provider"`
	Content  *string `json:"content"`
	Shared   *bool   `json:"shared"`
}

// Detail is a record plus its grants, the shape of a single-record fetch.
type Detail struct {
	HealthRecord
	SharedWith []sharing.Grant `json:"sharedWith"`
}

// Create inserts the record together with any attachment descriptors in one
// transaction.
func (s *Service) Create(ctx context.Context, in Input) (*HealthRecord, error) {
	patientID, err := uuid.Parse(in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient id: %w", err)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	rec := &HealthRecord{
		PatientID:   patientID,
		Title:       in.Title,
		Type:        in.Type,
		Date:        date,
		Provider:    in.Provider,
		Content:     in.Content,
		Attachments: make([]Attachment, 0, len(in.Attachments)),
	}
	for _, a := range in.Attachments {
		rec.Attachments = append(rec.Attachments, Attachment{
			Name: a.Name, Type: a.Type, Size: a.Size, URL: a.URL,
		})
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	grants, err := s.grants.ListForRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{HealthRecord: *rec, SharedWith: grants}, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]HealthRecord, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// Update merges the supplied fields over the stored row.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*HealthRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.Type != nil {
		rec.Type = *in.Type
	}
	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		rec.Date = date
	}
	if in.Provider != nil {
		rec.Provider = *in.Provider
	}
	if in.Content != nil {
		rec.Content = in.Content
	}
	if in.Shared != nil {
		rec.Shared = *in.Shared
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record, its attachments and every grant referencing it
// in one transaction. Either all of it goes or none of it does.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.grants.DeleteForRecord(txCtx, id); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

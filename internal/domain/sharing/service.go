package sharing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifevault/lifevault/internal/platform/auth"
)

// RecordDirectory is the slice of the record store the ledger needs: grant
// targets must exist, and granting flips the record's shared flag. Satisfied
// by the record repository, wired in main.
type RecordDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	MarkShared(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo    Repository
	records RecordDirectory
	now     func() time.Time
}

func NewService(repo Repository, records RecordDirectory) *Service {
	return &Service{repo: repo, records: records, now: time.Now}
}

// NewServiceWithClock is for tests that pin the expiration cutoff.
func NewServiceWithClock(repo Repository, records RecordDirectory, now func() time.Time) *Service {
	return &Service{repo: repo, records: records, now: now}
}

// ShareInput carries a share request. Omitted permissions take their
// defaults on every call, including re-shares of an existing grant.
type ShareInput struct {
	Email              string     `json:"email"`
	ViewPermission     *bool      `json:"viewPermission"`
	DownloadPermission *bool      `json:"downloadPermission"`
	ResharePermission  *bool      `json:"resharePermission"`
	Expiration         *time.Time `json:"expiration"`
}

// Share creates or replaces the grant for (email, record). The expiration is
// an absolute instant; callers wanting "N days from now" resolve that before
// the request reaches the ledger.
func (s *Service) Share(ctx context.Context, recordID uuid.UUID, in ShareInput) (*Grant, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	exists, err := s.records.Exists(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRecordNotFound
	}

	g := &Grant{
		HealthRecordID:     recordID,
		Email:              auth.NormalizeEmail(in.Email),
		ViewPermission:     defaultBool(in.ViewPermission, true),
		DownloadPermission: defaultBool(in.DownloadPermission, false),
		ResharePermission:  defaultBool(in.ResharePermission, false),
		Expiration:         in.Expiration,
	}
	if err := s.repo.Upsert(ctx, g); err != nil {
		return nil, err
	}

	if err := s.records.MarkShared(ctx, recordID); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Revoke(ctx context.Context, id uuid.UUID) error {
	return s.repo.Revoke(ctx, id)
}

// ListForGrantee returns the unexpired grants for an email address.
func (s *Service) ListForGrantee(ctx context.Context, email string) ([]SharedRecord, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	return s.repo.ListActiveForGrantee(ctx, auth.NormalizeEmail(email), s.now())
}

func defaultBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

package sharing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Grant gives one email address access to one record. There is at most one
// grant per (email, record) pair; sharing again replaces the existing one.
type Grant struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	HealthRecordID     uuid.UUID  `db:"health_record_id" json:"healthRecordId"`
	Email              string     `db:"email" json:"email"`
	ViewPermission     bool       `db:"view_permission" json:"viewPermission"`
	DownloadPermission bool       `db:"download_permission" json:"downloadPermission"`
	ResharePermission  bool       `db:"reshare_permission" json:"resharePermission"`
	Expiration         *time.Time `db:"expiration" json:"expiration"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// Active reports whether the grant is usable at the given instant. A nil
// expiration never expires.
func (g *Grant) Active(now time.Time) bool {
	return g.Expiration == nil || g.Expiration.After(now)
}

// SharedRecord is a grant joined with its record and the owning patient's
// public fields, the shape of the "shared with me" listing.
type SharedRecord struct {
	Grant
	HealthRecord RecordSummary `json:"healthRecord"`
}

type RecordSummary struct {
	ID        uuid.UUID      `json:"id"`
	PatientID uuid.UUID      `json:"patientId"`
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	Date      time.Time      `json:"date"`
	Provider  string         `json:"provider"`
	Content   *string        `json:"content,omitempty"`
	Shared    bool           `json:"shared"`
	Patient   PatientSummary `json:"patient"`
}

// PatientSummary exposes only the owner fields a grantee may see.
type PatientSummary struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

var (
	// ErrNotFound means no grant matched the lookup.
	ErrNotFound = errors.New("grant not found")
	// ErrRecordNotFound means the record being shared does not exist.
	ErrRecordNotFound = errors.New("health record not found")
)

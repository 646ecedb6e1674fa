package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// HealthRecord is a single entry in a patient's history. The shared flag is
// set when the first grant is created and is never cleared by revocation.
type HealthRecord struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	PatientID   uuid.UUID    `db:"patient_id" json:"patientId"`
	Title       string       `db:"title" json:"title"`
	Type        string       `db:"type" json:"type"`
	Date        time.Time    `db:"date" json:"date"`
	Provider    string       `db:"provider" json:"provider"`
	Content     *string      `db:"content" json:"content,omitempty"`
	Shared      bool         `db:"shared" json:"shared"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

// Attachment is a file descriptor owned by a record. The bytes themselves
// live behind the URL, not in the database.
type Attachment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	HealthRecordID uuid.UUID `db:"health_record_id" json:"healthRecordId"`
	Name           string    `db:"name" json:"name"`
	Type           string    `db:"type" json:"type"`
	Size           int64     `db:"size" json:"size"`
	URL            string    `db:"url" json:"url"`
}

// ErrNotFound means no record matched the lookup.
var ErrNotFound = errors.New("health record not found")

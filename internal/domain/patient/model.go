package patient

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Patient is a demographic profile. Everything beyond the name is optional;
// the front end fills fields in over time.
type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Email            *string    `db:"email" json:"email,omitempty"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	BloodType        *string    `db:"blood_type" json:"bloodType,omitempty"`
	Height           *float64   `db:"height" json:"height,omitempty"`
	Weight           *float64   `db:"weight" json:"weight,omitempty"`
	Allergies        []string   `db:"allergies" json:"allergies,omitempty"`
	Conditions       []string   `db:"conditions" json:"conditions,omitempty"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	Address          *string    `db:"address" json:"address,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergencyContact,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// ErrNotFound means no patient matched the lookup.
var ErrNotFound = errors.New("patient not found")

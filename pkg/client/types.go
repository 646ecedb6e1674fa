package client

import "time"

// Wire types for the LifeVault API. Field names match the JSON payloads the
// server produces.

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Credentials struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type Patient struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            *string    `json:"email,omitempty"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	BloodType        *string    `json:"bloodType,omitempty"`
	Height           *float64   `json:"height,omitempty"`
	Weight           *float64   `json:"weight,omitempty"`
	Allergies        []string   `json:"allergies,omitempty"`
	Conditions       []string   `json:"conditions,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Address          *string    `json:"address,omitempty"`
	EmergencyContact *string    `json:"emergencyContact,omitempty"`
}

type Attachment struct {
	ID             string `json:"id"`
	HealthRecordID string `json:"healthRecordId"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Size           int64  `json:"size"`
	URL            string `json:"url"`
}

type HealthRecord struct {
	ID          string       `json:"id"`
	PatientID   string       `json:"patientId"`
	Title       string       `json:"title"`
	Type        string       `json:"type"`
	Date        time.Time    `json:"date"`
	Provider    string       `json:"provider"`
	Content     *string      `json:"content,omitempty"`
	Shared      bool         `json:"shared"`
	Attachments []Attachment `json:"attachments"`
}

type RecordDetail struct {
	HealthRecord
	SharedWith []Grant `json:"sharedWith"`
}

type Grant struct {
	ID                 string     `json:"id"`
	HealthRecordID     string     `json:"healthRecordId"`
	Email              string     `json:"email"`
	ViewPermission     bool       `json:"viewPermission"`
	DownloadPermission bool       `json:"downloadPermission"`
	ResharePermission  bool       `json:"resharePermission"`
	Expiration         *time.Time `json:"expiration"`
}

type SharedRecord struct {
	Grant
	HealthRecord struct {
		HealthRecord
		Patient struct {
			Name  string  `json:"name"`
			Email *string `json:"email"`
		} `json:"patient"`
	} `json:"healthRecord"`
}

type AttachmentInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type RecordInput struct {
	PatientID   string            `json:"patientId"`
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Date        string            `json:"date"`
	Provider    string            `json:"provider"`
	Content     *string           `json:"content,omitempty"`
	Attachments []AttachmentInput `json:"attachments,omitempty"`
}

type RecordUpdate struct {
	Title    *string `json:"title,omitempty"`
	Type     *string `json:"type,omitempty"`
	Date     *string `json:"date,omitempty"`
	Provider *string `json:"provider,omitempty"`
	Content  *string `json:"content,omitempty"`
	Shared   *bool   `json:"shared,omitempty"`
}

// SharePermissions selects what a grantee may do. Nil fields take the server
// defaults (view on, download and reshare off).
type SharePermissions struct {
	View     *bool
	Download *bool
	Reshare  *bool
}

package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Input carries a patient payload; nil fields are absent. On update, absent
// fields keep their stored value.
type Input struct {
	Name             *string    `json:"name"`
	Email            *string    `json:"email"`
	DateOfBirth      *time.Time `json:"dateOfBirth"`
	Gender           *string    `json:"gender"`
	BloodType        *string    `json:"bloodType"`
	Height           *float64   `json:"height"`
	Weight           *float64   `json:"weight"`
	Allergies        []string   `json:"allergies"`
	Conditions       []string   `json:"conditions"`
	Phone            *string    `json:"phone"`
	Address          *string    `json:"address"`
	EmergencyContact *string    `json:"emergencyContact"`
}

func (s *Service) Create(ctx context.Context, in Input) (*Patient, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	p := &Patient{
		Name:             *in.Name,
		Email:            in.Email,
		DateOfBirth:      in.DateOfBirth,
		Gender:           in.Gender,
		BloodType:        in.BloodType,
		Height:           in.Height,
		Weight:           in.Weight,
		Allergies:        in.Allergies,
		Conditions:       in.Conditions,
		Phone:            in.Phone,
		Address:          in.Address,
		EmergencyContact: in.EmergencyContact,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
	}
	if in.Email != nil {
		p.Email = in.Email
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		p.Gender = in.Gender
	}
	if in.BloodType != nil {
		p.BloodType = in.BloodType
	}
	if in.Height != nil {
		p.Height = in.Height
	}
	if in.Weight != nil {
		p.Weight = in.Weight
	}
	if in.Allergies != nil {
		p.Allergies = in.Allergies
	}
	if in.Conditions != nil {
		p.Conditions = in.Conditions
	}
	if in.Phone != nil {
		p.Phone = in.Phone
	}
	if in.Address != nil {
		p.Address = in.Address
	}
	if in.EmergencyContact != nil {
		p.EmergencyContact = in.EmergencyContact
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

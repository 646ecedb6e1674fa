package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifevault/lifevault/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user. The email is normalized before the uniqueness
// check so that case variants of a registered address are rejected.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	email = auth.NormalizeEmail(email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{Name: name, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, auth.NormalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies a partial update: nil fields keep their prior value.
// Changing the email re-checks uniqueness against other accounts.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, name, email *string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != nil && *email != "" {
		normalized := auth.NormalizeEmail(*email)
		existing, err := s.repo.GetByEmail(ctx, normalized)
		if err == nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		u.Email = normalized
	}
	if name != nil && *name != "" {
		u.Name = *name
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword re-validates the current credential before accepting a new
// one. On mismatch the stored hash is untouched.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(currentPassword, u.PasswordHash) {
		return ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

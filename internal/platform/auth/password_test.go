package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Verifies(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple", password: "testPassword123"},
		{name: "special chars", password: "p@ssw0rd!#$%"},
		{name: "unicode", password: "пароль-秘密"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hash, err := HashPassword(test.password)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(hash, "$2a$") {
				t.Errorf("expected bcrypt hash prefix, got %q", hash[:4])
			}
			if !VerifyPassword(test.password, hash) {
				t.Error("expected password to verify against its own hash")
			}
			if VerifyPassword("wrong-password", hash) {
				t.Error("expected wrong password to fail verification")
			}
		})
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct hashes for the same password")
	}
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 30 * 24 * time.Hour

// Token verification failures. The three cases are distinguishable so the
// caller can log or message them separately; all of them map to 401 at the
// API surface.
var (
	ErrTokenMissing   = errors.New("no token provided")
	ErrTokenMalformed = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims are the identity fields embedded in a bearer token.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HMAC-signed bearer tokens.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret, now: time.Now}
}

// NewSignerWithClock creates a signer with a custom clock, for tests.
func NewSignerWithClock(secret []byte, now func() time.Time) *Signer {
	return &Signer{secret: secret, now: now}
}

// Issue signs a token for the given identity, expiring TokenTTL from now.
func (s *Signer) Issue(userID, email, name string) (string, error) {
	issued := s.now()
	claims := Claims{
		ID:    userID,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the session it carries.
// An empty token yields ErrTokenMissing, a well-formed but expired token
// ErrTokenExpired, and anything else ErrTokenMalformed.
func (s *Signer) Verify(tokenStr string) (*Session, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return &Session{
		UserID: claims.ID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

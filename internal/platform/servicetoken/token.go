// Package servicetoken signs and verifies the short-lived HS256 bearer tokens
// the booking service presents to the hotel service.
package servicetoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleService = "SERVICE"

var ErrInvalidToken = errors.New("invalid service token")

type Signer struct {
	secret  []byte
	subject string
	ttl     time.Duration
	now     func() time.Time
}

func NewSigner(secret, subject string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), subject: subject, ttl: ttl, now: time.Now}
}

func (s *Signer) Token() (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  s.subject,
		"role": RoleService,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return signed, nil
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify returns the calling service's name.
func (v *Verifier) Verify(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != RoleService {
		return "", ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	return sub, nil
}

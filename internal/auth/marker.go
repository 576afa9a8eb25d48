package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MarkerKey names the session marker wherever it is stored (cookie, marker file).
const MarkerKey = "vip_auth_token"

const markerSubject = "dashboard"

var ErrInvalidMarker = errors.New("invalid session marker")

// Signer issues and checks session markers: HS256 tokens that only say "authenticated".
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

type markerClaims struct {
	jwt.RegisteredClaims
	Remember bool `json:"remember,omitempty"`
}

// Marker is an issued session marker.
type Marker struct {
	Token     string
	Remember  bool
	ExpiresAt time.Time
}

func (s *Signer) Issue(remember bool) (Marker, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := markerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   markerSubject,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Remember: remember,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Marker{}, fmt.Errorf("sign marker: %w", err)
	}

	return Marker{Token: signed, Remember: remember, ExpiresAt: expires}, nil
}

func (s *Signer) Verify(token string) error {
	if token == "" {
		return ErrInvalidMarker
	}

	parsed, err := jwt.ParseWithClaims(token, &markerClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithSubject(markerSubject), jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMarker, err)
	}

	if !parsed.Valid {
		return ErrInvalidMarker
	}

	return nil
}

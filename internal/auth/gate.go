// Package auth implements the shared-password gate in front of the dashboard.
// It is a convenience lock, not a credential system: there is one password and no users.
package auth

import (
	"crypto/subtle"
	"errors"
)

var ErrWrongPassword = errors.New("wrong password")

type Gate struct {
	password string
	signer   *Signer
}

func NewGate(password string, signer *Signer) *Gate {
	return &Gate{password: password, signer: signer}
}

// Login compares password with the configured one and issues a marker on a match.
func (g *Gate) Login(password string, remember bool) (Marker, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return Marker{}, ErrWrongPassword
	}

	return g.signer.Issue(remember)
}

// Verify reports whether token is a live marker issued by this gate.
func (g *Gate) Verify(token string) error {
	return g.signer.Verify(token)
}

package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MarkerStore keeps a marker between runs.
type MarkerStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileMarkers stores the marker in a single file readable only by the owner.
type FileMarkers struct {
	path string
}

func NewFileMarkers(path string) *FileMarkers {
	return &FileMarkers{path: path}
}

// Load returns "" when no marker was saved.
func (f *FileMarkers) Load() (string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read marker: %w", err)
	}

	return strings.TrimSpace(string(b)), nil
}

func (f *FileMarkers) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create marker directory: %w", err)
	}

	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}

	return nil
}

func (f *FileMarkers) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove marker: %w", err)
	}

	return nil
}

// Session tracks the login state of a single interactive process. A remembered login
// is written to the durable store; otherwise it lives only as long as the process.
type Session struct {
	mu      sync.Mutex
	gate    *Gate
	durable MarkerStore
	current string
}

func NewSession(gate *Gate, durable MarkerStore) *Session {
	return &Session{gate: gate, durable: durable}
}

// Restore picks up a remembered login. It reports whether the session is authenticated.
func (s *Session) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.durable.Load()
	if err != nil || token == "" {
		return false
	}

	if s.gate.Verify(token) != nil {
		_ = s.durable.Clear()
		return false
	}

	s.current = token

	return true
}

func (s *Session) Login(password string, remember bool) error {
	marker, err := s.gate.Login(password, remember)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = marker.Token

	if remember {
		return s.durable.Save(marker.Token)
	}

	return nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ""

	return s.durable.Clear()
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current != "" && s.gate.Verify(s.current) == nil
}

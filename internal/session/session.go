// Package session holds the signed-in user's token and per-view selections
// and persists them between invocations.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"

	"github.com/alfredjeanlab/campus/internal/model"
)

// Session is the state that survives between commands. It is passed
// explicitly to whatever needs it; nothing reads it from a global.
type Session struct {
	AccessToken  string            `toml:"token,omitempty"`
	User         string            `toml:"user,omitempty"`
	Role         model.Role        `toml:"role,omitempty"`
	APIURL       string            `toml:"api_url,omitempty"`
	LastSelected map[string]string `toml:"last_selected,omitempty"`
}

// Token returns the bearer token, satisfying client.TokenSource.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.AccessToken
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Select records id as the last selected entity in view.
func (s *Session) Select(view, id string) {
	if s.LastSelected == nil {
		s.LastSelected = map[string]string{}
	}
	if id == "" {
		delete(s.LastSelected, view)
		return
	}
	s.LastSelected[view] = id
}

// Selected returns the last selected entity id in view, if any.
func (s *Session) Selected(view string) (string, bool) {
	id, ok := s.LastSelected[view]
	return id, ok
}

// Resolve returns arg when set, else the last selection in view.
func (s *Session) Resolve(view, arg string) (string, error) {
	if arg = strings.TrimSpace(arg); arg != "" {
		return arg, nil
	}
	if id, ok := s.Selected(view); ok {
		return id, nil
	}
	return "", fmt.Errorf("no id given and nothing selected in %s", view)
}

// Store reads and writes a Session as TOML.
type Store struct {
	path string
}

// NewStore returns a store backed by path; empty path means DefaultPath.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// DefaultPath is ~/.local/state/campus/session.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "campus", "session.toml"), nil
}

// Path returns the file the store uses.
func (s *Store) Path() string { return s.path }

// Load reads the session. A missing file yields an empty session.
func (s *Store) Load() (*Session, error) {
	var sess Session
	if _, err := toml.DecodeFile(s.path, &sess); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{LastSelected: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("reading session %s: %w", s.path, err)
	}
	if sess.LastSelected == nil {
		sess.LastSelected = map[string]string{}
	}
	return &sess, nil
}

// Save writes the session atomically with owner-only permissions.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(sess); err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := atomic.WriteFile(s.path, &buf); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	// atomic.WriteFile keeps an existing file's mode but not for new files.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("setting session permissions: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing a missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

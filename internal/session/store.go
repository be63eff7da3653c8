package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"voyago/internal/client"
)

// Session is the client-held record of who is logged in: the last-issued
// token and the redacted user returned with it.
type Session struct {
	Token string      `json:"token"`
	User  client.User `json:"user"`
}

// Store persists the session across process restarts, the way a browser
// keeps it in localStorage.
type Store interface {
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

// FileStore keeps the session in a JSON file, created with owner-only
// permissions since it holds a live token.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the session file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "voyago", "session.json"), nil
}

func (s *FileStore) Load() (Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt file is treated as no session.
		return Session{}, false, nil
	}
	if sess.Token == "" {
		return Session{}, false, nil
	}
	return sess, true, nil
}

func (s *FileStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

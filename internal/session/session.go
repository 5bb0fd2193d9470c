// ABOUTME: Session state for the logged-in user with config-dir persistence
// ABOUTME: Single mutation entry points keep the memory and disk copies in sync

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session holds the current user's identity and credential.
type Session struct {
	Username string
	UserID   int
	IsAdmin  bool
	Token    string
}

// LoggedIn reports whether a user is authenticated.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// CanModify reports whether the session may mutate a resource owned by
// ownerID: owners and admins only. Callers must wait until the owner id is
// actually known before asking.
func (s Session) CanModify(ownerID int) bool {
	if !s.LoggedIn() {
		return false
	}
	return s.IsAdmin || s.UserID == ownerID
}

// fileSession is the persisted shape. Earlier clients stored isAdmin as the
// strings "true"/"false", so the field is decoded leniently.
type fileSession struct {
	User    string          `json:"user"`
	ID      int             `json:"id"`
	IsAdmin json.RawMessage `json:"isAdmin"`
	Token   string          `json:"token"`
}

// Store owns the in-memory session and its file mirror. Set and Clear are the
// only mutation points; both update memory and disk together.
type Store struct {
	configDir string
	current   Session
	loaded    bool
}

// NewStore creates a session store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the session directory following the XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "teambuilder")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "teambuilder")
}

func (st *Store) sessionFile() string {
	return filepath.Join(st.configDir, "session.json")
}

// Load seeds the in-memory session from disk. A missing or malformed file
// yields a logged-out session, never an error the caller must handle before
// startup. No network call is made.
func (st *Store) Load() Session {
	st.loaded = true

	data, err := os.ReadFile(st.sessionFile())
	if err != nil {
		st.current = Session{}
		return st.current
	}

	var fs fileSession
	if err := json.Unmarshal(data, &fs); err != nil {
		st.current = Session{}
		return st.current
	}

	st.current = Session{
		Username: fs.User,
		UserID:   fs.ID,
		IsAdmin:  parseAdmin(fs.IsAdmin),
		Token:    fs.Token,
	}
	return st.current
}

// Current returns the in-memory session, loading it on first use.
func (st *Store) Current() Session {
	if !st.loaded {
		return st.Load()
	}
	return st.current
}

// Set replaces the session, updating memory and the file mirror together.
// On write failure memory is left unchanged so the two copies never drift.
func (st *Store) Set(s Session) error {
	if err := os.MkdirAll(st.configDir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	fs := fileSession{
		User:    s.Username,
		ID:      s.UserID,
		IsAdmin: json.RawMessage(fmt.Sprintf("%t", s.IsAdmin)),
		Token:   s.Token,
	}
	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(st.sessionFile(), data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	st.current = s
	st.loaded = true
	return nil
}

// Clear logs out: the file is removed and the in-memory session reset.
func (st *Store) Clear() error {
	err := os.Remove(st.sessionFile())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	st.current = Session{}
	st.loaded = true
	return nil
}

// parseAdmin accepts bool or the legacy string forms and normalizes to bool.
func parseAdmin(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "true"
	}
	return false
}

// ABOUTME: Tests for the session store and permission checks
// ABOUTME: Covers disk round trips, legacy formats, and the owner-or-admin rule

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)

	sess := Session{Username: "ash", UserID: 7, IsAdmin: true, Token: "tok123"}
	require.NoError(t, st.Set(sess))

	// A fresh store reading the same directory sees the same session
	st2 := NewStore(dir)
	got := st2.Load()
	assert.Equal(t, sess, got)
}

func TestStore_LoadMissingFile(t *testing.T) {
	st := NewStore(t.TempDir())
	got := st.Load()
	assert.False(t, got.LoggedIn())
	assert.Equal(t, Session{}, got)
}

func TestStore_LoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600))

	st := NewStore(dir)
	got := st.Load()
	assert.False(t, got.LoggedIn())
}

func TestStore_LegacyStringAdminFlag(t *testing.T) {
	dir := t.TempDir()
	data := `{"user":"misty","id":3,"isAdmin":"true","token":"tok"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(data), 0600))

	st := NewStore(dir)
	got := st.Load()
	assert.True(t, got.IsAdmin)
	assert.Equal(t, "misty", got.Username)
	assert.Equal(t, 3, got.UserID)

	data = `{"user":"brock","id":4,"isAdmin":"false","token":"tok"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(data), 0600))
	got = NewStore(dir).Load()
	assert.False(t, got.IsAdmin)
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)
	require.NoError(t, st.Set(Session{Username: "ash", UserID: 7, Token: "tok"}))

	require.NoError(t, st.Clear())
	assert.False(t, st.Current().LoggedIn())

	_, err := os.Stat(filepath.Join(dir, "session.json"))
	assert.True(t, os.IsNotExist(err))

	// Clearing an already cleared store is not an error
	require.NoError(t, st.Clear())
}

func TestStore_CurrentLazyLoads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewStore(dir).Set(Session{Username: "ash", UserID: 7, Token: "tok"}))

	st := NewStore(dir)
	assert.Equal(t, "ash", st.Current().Username)
}

func TestCanModify(t *testing.T) {
	tests := []struct {
		name    string
		sess    Session
		ownerID int
		want    bool
	}{
		{"logged out", Session{}, 7, false},
		{"owner", Session{UserID: 7, Token: "tok"}, 7, true},
		{"other user", Session{UserID: 8, Token: "tok"}, 7, false},
		{"admin on foreign team", Session{UserID: 8, IsAdmin: true, Token: "tok"}, 7, true},
		{"logged out admin flag ignored", Session{IsAdmin: true}, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sess.CanModify(tt.ownerID))
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	assert.Equal(t, filepath.Join("/tmp/xdgtest", "teambuilder"), DefaultConfigDir())
}

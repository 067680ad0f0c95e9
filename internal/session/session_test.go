package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alfredjeanlab/campus/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "state", "session.toml"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sess.LoggedIn() {
		t.Error("empty session reports LoggedIn")
	}
	if sess.LastSelected == nil {
		t.Error("LastSelected is nil, want empty map")
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := &Session{
		AccessToken:  "tok-abc",
		User:         "hr@acme.example",
		Role:         model.RoleHR,
		APIURL:       "http://localhost:8080/api",
		LastSelected: map[string]string{"hr-applications": "a42"},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte("token = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Error("Load() of corrupt file: expected error")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on missing file error = %v", err)
	}
	if err := s.Save(&Session{AccessToken: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	sess, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if sess.LoggedIn() {
		t.Error("session still logged in after Clear()")
	}
}

func TestSession_SelectAndResolve(t *testing.T) {
	var sess Session
	if _, err := sess.Resolve("student-offers", ""); err == nil {
		t.Error("Resolve() with nothing selected: expected error")
	}

	sess.Select("student-offers", "o7")
	if id, ok := sess.Selected("student-offers"); !ok || id != "o7" {
		t.Errorf("Selected() = %q, %v", id, ok)
	}
	for _, tc := range []struct{ arg, want string }{
		{"", "o7"},
		{"  ", "o7"},
		{"o9", "o9"},
	} {
		got, err := sess.Resolve("student-offers", tc.arg)
		if err != nil || got != tc.want {
			t.Errorf("Resolve(%q) = %q, %v, want %q", tc.arg, got, err, tc.want)
		}
	}

	sess.Select("student-offers", "")
	if _, ok := sess.Selected("student-offers"); ok {
		t.Error("Select(view, \"\") did not clear the selection")
	}
}

func TestSession_NilToken(t *testing.T) {
	var sess *Session
	if sess.Token() != "" {
		t.Error("nil session returned a token")
	}
}

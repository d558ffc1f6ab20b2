package store

import (
	"encoding/json"
	"testing"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zdir/internal/user"
)

func testUsers() []user.User {
	return []user.User{
		{
			ID:      "local-1700000000000-000001",
			Name:    "Bob",
			Company: user.Company{Name: "Zeta"},
			Address: user.Address{Full: "1 Main St", Geo: user.Geo{Lat: "0", Lng: "0"}},
		},
		{
			ID:   "local-1700000000000-000002",
			Name: "Carol",
		},
	}
}

func TestLoadMissingSlot(t *testing.T) {
	s := New(zfilesystem.NewMemFS())

	users, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty collection, got %d users", len(users))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(zfilesystem.NewMemFS())

	if err := s.Save(testUsers()); err != nil {
		t.Fatalf("save: %v", err)
	}

	users, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("user count: got %d, want 2", len(users))
	}
	if users[0].ID != "local-1700000000000-000001" || users[0].Company.Name != "Zeta" {
		t.Errorf("users[0] mismatch: %+v", users[0])
	}
}

func TestLoadCorruptSlotIsEmpty(t *testing.T) {
	fs := zfilesystem.NewMemFS()
	if err := fs.WriteFile("local_users.json", []byte(`{"definitely": "not an array`), 0o600); err != nil {
		t.Fatalf("seed corrupt slot: %v", err)
	}

	s := New(fs)
	users, err := s.Load()
	if err != nil {
		t.Fatalf("corrupt slot must not error: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("corrupt slot should load as empty, got %d users", len(users))
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := New(zfilesystem.NewMemFS())

	if err := s.Save(testUsers()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(testUsers()[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}

	users, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("save should be a full overwrite, got %d users", len(users))
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	fs := zfilesystem.NewMemFS()
	s := New(fs)

	if err := s.Save(nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}

	data, err := fs.ReadFile("local_users.json")
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("slot should hold a JSON array, got %s", data)
	}
	if len(raw) != 0 {
		t.Errorf("expected empty array, got %d elements", len(raw))
	}
}

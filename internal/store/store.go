// Package store persists locally created users as a single JSON document on
// a filesystem. The slot is read once at startup and rewritten in full on
// every change to the local collection.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zdir/internal/user"
)

const usersFile = "local_users.json"

// Store manages the durable slot holding locally created users.
type Store struct {
	fs zfilesystem.ReadWriteFileFS
}

// New creates a store over the given filesystem.
func New(fsys zfilesystem.ReadWriteFileFS) *Store {
	return &Store{fs: fsys}
}

// Load reads the local user collection. A missing or unparsable slot yields
// the empty collection: corrupt local data must never take the directory
// down, it is logged and treated as "no local users".
func (s *Store) Load() ([]user.User, error) {
	data, err := s.fs.ReadFile(usersFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load local users: %w", err)
	}

	var users []user.User
	if err := json.Unmarshal(data, &users); err != nil {
		slog.Warn("local user slot unparsable, starting empty", "err", err)
		return nil, nil
	}

	return users, nil
}

// Save overwrites the slot with the full local collection.
func (s *Store) Save(users []user.User) error {
	if users == nil {
		users = []user.User{}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("save local users: marshal: %w", err)
	}

	if err := s.fs.WriteFile(usersFile, data, 0o600); err != nil {
		return fmt.Errorf("save local users: write: %w", err)
	}

	return nil
}

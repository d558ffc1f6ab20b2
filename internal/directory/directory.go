// Package directory reconciles the remote user collection with locally
// created users and runs the add-user workflow. It is the single owner of
// both collections: the remote cache changes only through Refresh/SetRemote
// and the local collection only through Add/Accept, which persist it.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zarlcorp/zdir/internal/localid"
	"github.com/zarlcorp/zdir/internal/placeholder"
	"github.com/zarlcorp/zdir/internal/store"
	"github.com/zarlcorp/zdir/internal/user"
)

// ErrNotFound is returned by Lookup when an id exists in neither the local
// collection, the remote cache, nor the remote API.
var ErrNotFound = errors.New("user not found")

// Source is the remote side of the directory, implemented by
// placeholder.Client.
type Source interface {
	Users(ctx context.Context) ([]user.User, error)
	User(ctx context.Context, id user.ID) (user.User, error)
	Create(ctx context.Context, u user.User) (user.ID, error)
}

// ValidationError reports a rejected candidate with per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid user: %d field(s) rejected", len(e.Fields))
}

// Directory holds the two user collections and derives the reconciled view.
// It is not safe for concurrent use; callers own it from a single goroutine
// (the TUI mutates it only from its update loop).
type Directory struct {
	source Source
	store  *store.Store
	gen    *localid.Generator

	remote []user.User
	local  []user.User
}

// Open creates a directory and loads the local collection from the store.
// A broken slot degrades to an empty local collection.
func Open(source Source, st *store.Store, gen *localid.Generator) *Directory {
	local, err := st.Load()
	if err != nil {
		slog.Warn("loading local users", "err", err)
		local = nil
	}

	return &Directory{
		source: source,
		store:  st,
		gen:    gen,
		local:  local,
	}
}

// SetSource swaps the remote source, e.g. after the API endpoint changed in
// settings. The remote cache is kept until the next Refresh.
func (d *Directory) SetSource(source Source) {
	d.source = source
}

// Refresh fetches the remote collection. On failure the previous remote data
// stays in place so the view never loses already-loaded records.
func (d *Directory) Refresh(ctx context.Context) error {
	users, err := d.source.Users(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	d.remote = users
	return nil
}

// SetRemote replaces the remote cache with an externally fetched collection.
// The TUI fetches in a command and applies the result here on its own loop.
func (d *Directory) SetRemote(users []user.User) {
	d.remote = users
}

// Remote returns the cached remote collection.
func (d *Directory) Remote() []user.User { return d.remote }

// Local returns the local collection.
func (d *Directory) Local() []user.User { return d.local }

// Users returns the reconciled collection, local records winning on id.
func (d *Directory) Users() []user.User {
	return Merge(d.remote, d.local)
}

// Search returns the filtered, sorted view of the reconciled collection.
func (d *Directory) Search(term string, key SortKey, order SortOrder) []user.User {
	return Query(d.Users(), term, key, order)
}

// Lookup resolves a user by id: local collection first, then the remote
// cache, then a direct remote fetch for ids that could exist remotely.
// A miss everywhere is ErrNotFound, distinct from transport failures.
func (d *Directory) Lookup(ctx context.Context, id user.ID) (user.User, error) {
	for _, u := range d.local {
		if u.ID == id {
			return u, nil
		}
	}
	for _, u := range d.remote {
		if u.ID == id {
			return u, nil
		}
	}

	if id.IsLocal() {
		// local ids never exist remotely
		return user.User{}, ErrNotFound
	}

	u, err := d.source.User(ctx, id)
	if errors.Is(err, placeholder.ErrNotFound) {
		return user.User{}, ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("lookup %s: %w", id, err)
	}
	return u, nil
}

// Add runs the add-user workflow: validate, post to the remote API as a
// best-effort side channel, then accept the candidate locally. The remote
// call's outcome never blocks local acceptance, since its response id is a
// mock and local data is authoritative. A create failure is only logged.
func (d *Directory) Add(ctx context.Context, candidate user.User) (user.User, error) {
	if errs := user.Validate(candidate); len(errs) > 0 {
		return user.User{}, &ValidationError{Fields: errs}
	}

	if _, err := d.source.Create(ctx, candidate); err != nil {
		slog.Warn("remote create failed, accepting locally", "err", err)
	}

	return d.Accept(candidate)
}

// Accept assigns a local id, normalizes the record's substructures, appends
// it to the local collection, and persists the collection. Callers that run
// the remote create themselves (the TUI) finish the workflow here.
func (d *Directory) Accept(candidate user.User) (user.User, error) {
	candidate.ID = d.gen.Next()
	candidate = candidate.Normalized()

	local := append(append([]user.User{}, d.local...), candidate)
	if err := d.store.Save(local); err != nil {
		return user.User{}, fmt.Errorf("accept %s: %w", candidate.ID, err)
	}

	d.local = local
	return candidate, nil
}

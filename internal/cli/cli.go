// Package cli implements zdir's command-line subcommands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zdir/internal/config"
	"github.com/zarlcorp/zdir/internal/directory"
	"github.com/zarlcorp/zdir/internal/localid"
	"github.com/zarlcorp/zdir/internal/placeholder"
	"github.com/zarlcorp/zdir/internal/store"
	"github.com/zarlcorp/zdir/internal/user"
)

// DataDir returns the default data directory for zdir.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zdir"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zdir"
	}
	return home + "/.local/share/zdir"
}

// ConfigPath returns the config file location inside the data directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, config.FileName)
}

// OpenDirectory builds the directory over the configured API and data dir.
func OpenDirectory(dir string) (*directory.Directory, config.Config, error) {
	cfg, err := config.Load(ConfigPath(dir))
	if err != nil {
		return nil, config.Config{}, err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, config.Config{}, fmt.Errorf("create data dir: %w", err)
	}

	st := store.New(zfilesystem.NewOSFileSystem(dir))
	client := placeholder.NewClient(cfg.ClientConfig())
	return directory.Open(client, st, localid.New()), cfg, nil
}

// CmdList fetches, merges, and prints the directory listing.
func CmdList(ctx context.Context, args []string) {
	asJSON := hasFlag(args, "--json")
	localOnly := hasFlag(args, "--local")
	term := flagValue(args, "--search")

	d, cfg, err := OpenDirectory(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "zdir: %v\n", err)
		os.Exit(1)
	}

	key, order := cfg.SortSpec()
	if s := flagValue(args, "--sort"); s != "" {
		if key, err = directory.ParseSortKey(s); err != nil {
			fmt.Fprintf(os.Stderr, "zdir: %v\n", err)
			os.Exit(1)
		}
	}
	if hasFlag(args, "--desc") {
		order = directory.Descending
	}

	if !localOnly {
		if err := d.Refresh(ctx); err != nil {
			// merged view degrades to local users only
			fmt.Fprintf(os.Stderr, "zdir: remote unavailable: %v\n", err)
		}
	}

	var users []user.User
	if localOnly {
		users = directory.Query(d.Local(), term, key, order)
	} else {
		users = d.Search(term, key, order)
	}

	if len(users) == 0 {
		fmt.Println("no users found")
		return
	}

	if asJSON {
		printJSON(users)
		return
	}

	for _, u := range users {
		origin := " "
		if u.ID.IsLocal() {
			origin = "+"
		}
		fmt.Printf("  %s %-6s %-24s %-28s %s\n",
			origin,
			shortID(u.ID),
			truncate(u.Name, 24),
			truncate(u.Email, 28),
			truncate(u.Company.Name, 24),
		)
	}
}

// CmdGet resolves a single user by id and prints it.
func CmdGet(ctx context.Context, id string, args []string) {
	d, _, err := OpenDirectory(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "zdir: %v\n", err)
		os.Exit(1)
	}

	// the remote cache helps resolve integer ids without a per-id fetch
	if err := d.Refresh(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "zdir: remote unavailable: %v\n", err)
	}

	u, err := d.Lookup(ctx, user.ID(id))
	if errors.Is(err, directory.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "zdir: user %s not found\n", id)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zdir: %v\n", err)
		os.Exit(1)
	}

	if hasFlag(args, "--json") {
		printJSON(u)
		return
	}
	printUser(os.Stdout, u)
}

// CmdAdd reads a candidate user as JSON from stdin and runs the add flow.
func CmdAdd(ctx context.Context, r io.Reader) {
	var candidate user.User
	if err := json.NewDecoder(r).Decode(&candidate); err != nil {
		fmt.Fprintf(os.Stderr, "zdir: decode candidate: %v\n", err)
		os.Exit(1)
	}

	d, _, err := OpenDirectory(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "zdir: %v\n", err)
		os.Exit(1)
	}

	added, err := d.Add(ctx, candidate)

	var verr *directory.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, "zdir: candidate rejected:")
		for _, field := range sortedKeys(verr.Fields) {
			fmt.Fprintf(os.Stderr, "  %-20s %s\n", field, verr.Fields[field])
		}
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zdir: add: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "added %s\n", added.ID)
	printUser(os.Stdout, added)
}

func printUser(w io.Writer, u user.User) {
	fmt.Fprintf(w, "  id:        %s\n", u.ID)
	fmt.Fprintf(w, "  name:      %s\n", u.Name)
	fmt.Fprintf(w, "  username:  %s\n", u.Username)
	fmt.Fprintf(w, "  email:     %s\n", u.Email)
	fmt.Fprintf(w, "  phone:     %s\n", u.Phone)
	fmt.Fprintf(w, "  website:   %s\n", u.Website)
	fmt.Fprintf(w, "  company:   %s\n", u.Company.Name)
	if u.Company.CatchPhrase != "" {
		fmt.Fprintf(w, "             %s\n", u.Company.CatchPhrase)
	}
	fmt.Fprintf(w, "  address:   %s\n", u.FullAddress())
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "zdir: encode json: %v\n", err)
		os.Exit(1)
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the argument following flag, or "".
func flagValue(args []string, flag string) string {
	for i, a := range args {
		if strings.EqualFold(a, flag) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func shortID(id user.ID) string {
	return truncate(string(id), 6)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zarlcorp/zdir/internal/directory"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := []byte("[sort]\nkey = \"company\"\norder = \"desc\"\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Sort.Key != "company" || cfg.Sort.Order != "desc" {
		t.Errorf("sort section not applied: %+v", cfg.Sort)
	}
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("unset api section should keep defaults, got %q", cfg.API.BaseURL)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\nbroken"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed config should error, not silently reset")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := Config{
		API:  APIConfig{BaseURL: "http://localhost:8080", TimeoutSeconds: 5},
		Sort: SortConfig{Key: "company", Order: "desc"},
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestSortSpec(t *testing.T) {
	tests := []struct {
		name      string
		sort      SortConfig
		wantKey   directory.SortKey
		wantOrder directory.SortOrder
	}{
		{"defaults", SortConfig{}, directory.SortByName, directory.Ascending},
		{"company desc", SortConfig{Key: "company", Order: "desc"}, directory.SortByCompany, directory.Descending},
		{"garbage falls back", SortConfig{Key: "shoe size", Order: "diagonal"}, directory.SortByName, directory.Ascending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Sort = tt.sort
			key, order := cfg.SortSpec()
			if key != tt.wantKey || order != tt.wantOrder {
				t.Errorf("got %v/%v, want %v/%v", key, order, tt.wantKey, tt.wantOrder)
			}
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := Default()
	cc := cfg.ClientConfig()
	if cc.BaseURL != cfg.API.BaseURL {
		t.Errorf("base url: got %q", cc.BaseURL)
	}
	if cc.Timeout.Seconds() != float64(cfg.API.TimeoutSeconds) {
		t.Errorf("timeout: got %v", cc.Timeout)
	}
}

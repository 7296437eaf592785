package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
listen: ":8080"
engine:
  path: /usr/bin/stockfish
  depth: 6
  move_timeout: 5s
db_path: /tmp/games.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Engine.Path != "/usr/bin/stockfish" || cfg.Engine.Depth != 6 {
		t.Errorf("Engine = %+v", cfg.Engine)
	}
	if cfg.Engine.MoveTimeout.Std() != 5*time.Second {
		t.Errorf("MoveTimeout = %v", cfg.Engine.MoveTimeout.Std())
	}
	// untouched fields keep their defaults
	if cfg.AllowOrigin != Default().AllowOrigin {
		t.Errorf("AllowOrigin = %q", cfg.AllowOrigin)
	}
	if cfg.FENLogPath != Default().FENLogPath {
		t.Errorf("FENLogPath = %q", cfg.FENLogPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should error")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty listen", `listen: ""`},
		{"zero depth", "engine:\n  depth: 0\n"},
		{"negative timeout", "engine:\n  move_timeout: -1s\n"},
		{"malformed yaml", "listen: [unterminated\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

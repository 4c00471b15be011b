package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.Season != 0 {
		t.Fatalf("Season = %d, want 0", p.Season)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "paddock")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Slate\"\nseason = 2021\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Slate" || p.Season != 2021 {
		t.Fatalf("Load = %+v, want Slate/2021", p)
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Kanagawa", Season: 1998}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded := Load(path)
	if loaded.Theme != "Kanagawa" || loaded.Season != 1998 {
		t.Fatalf("Load = %+v, want Kanagawa/1998", loaded)
	}
}

func TestLoad_GracefulFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty theme", "theme = \"\"\n"},
		{"invalid toml", "not valid toml {{{\n"},
		{"negative season", "theme = \"\"\nseason = -4\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			p := Load(path)
			if p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
			if p.Season != 0 {
				t.Fatalf("Season = %d, want 0", p.Season)
			}
		})
	}
}

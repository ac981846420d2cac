package prefs

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := NewStore(afero.NewMemMapFs(), "").Load()
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	fsys := afero.NewMemMapFs()
	prefsFile := filepath.Join(home, ".config", "quill", "prefs.toml")
	if err := afero.WriteFile(fsys, prefsFile, []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store := NewStore(fsys, "")
	if store.Path() != prefsFile {
		t.Fatalf("Path = %q, want %q", store.Path(), prefsFile)
	}
	if p := store.Load(); p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")
	store := NewStore(fsys, prefsFile)

	if err := store.Save(Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if ok, _ := afero.Exists(fsys, prefsFile); !ok {
		t.Fatalf("prefs file %q was not created", prefsFile)
	}
	if p := store.Load(); p.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Kanagawa")
	}
}

func TestSave_ReadOnlyFilesystemFails(t *testing.T) {
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), filepath.Join(t.TempDir(), "prefs.toml"))
	if err := store.Save(Prefs{Theme: "Slate"}); err == nil {
		t.Fatalf("Save returned nil error on a read-only filesystem")
	}
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty theme", body: "theme = \"\"\n"},
		{name: "blank theme", body: "theme = \"   \"\n"},
		{name: "invalid toml", body: "not valid toml {{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := afero.WriteFile(fsys, prefsFile, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if p := NewStore(fsys, prefsFile).Load(); p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
		})
	}
}

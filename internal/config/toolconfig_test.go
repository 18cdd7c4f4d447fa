package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadToolConfig_Missing(t *testing.T) {
	_, err := LoadToolConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoadToolConfig_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	tc, err := LoadToolConfig(path)
	if err != nil {
		t.Fatalf("empty config should load, got %v", err)
	}
	if tc.DocRoot != "" {
		t.Fatalf("DocRoot = %q, want empty", tc.DocRoot)
	}
}

func TestLoadToolConfig_Fields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "name: my-site\ntype: drupal11\ndocroot: public\nphp_version: \"8.3\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	tc, err := LoadToolConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if tc.Name != "my-site" || tc.Type != "drupal11" || tc.DocRoot != "public" || tc.PHPVersion != "8.3" {
		t.Fatalf("got %+v", tc)
	}
}

func TestLoadToolConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("name: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadToolConfig(path)
	if err == nil || errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestApplyToolConfig(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.ApplyToolConfig(&ToolConfig{DocRoot: "public"})
	if cfg.WebRoot != "public" {
		t.Fatalf("WebRoot = %q, want public", cfg.WebRoot)
	}

	cfg = Default(t.TempDir())
	cfg.ApplyToolConfig(&ToolConfig{DocRoot: "../escape"})
	if cfg.WebRoot != DefaultWebRoot {
		t.Fatalf("WebRoot = %q, want %q", cfg.WebRoot, DefaultWebRoot)
	}

	cfg.ApplyToolConfig(nil)
	if cfg.WebRoot != DefaultWebRoot {
		t.Fatalf("WebRoot = %q after nil", cfg.WebRoot)
	}
}

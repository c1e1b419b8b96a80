package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Annotation.Label != "d" {
		t.Errorf("Expected default label %q, got %q", "d", cfg.Annotation.Label)
	}

	if cfg.Annotation.RectSize != 600 {
		t.Errorf("Expected default rect size 600, got %d", cfg.Annotation.RectSize)
	}

	if cfg.HalfExtent() != 300 {
		t.Errorf("Expected half extent 300, got %g", cfg.HalfExtent())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"empty label", func(c *Config) { c.Annotation.Label = "" }, true},
		{"rect size too small", func(c *Config) { c.Annotation.RectSize = 1 }, true},
		{"bad preview format", func(c *Config) { c.Output.PreviewFormat = "bmp" }, true},
		{"custom label", func(c *Config) { c.Annotation.Label = "lesion" }, false},
	}

	for _, test := range tests {
		cfg := Default()
		test.mutate(cfg)

		err := cfg.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected validation error", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected validation error: %v", test.name, err)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Annotation.Label = "fracture"
	cfg.Annotation.RectSize = 400

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loaded.Annotation.Label != "fracture" {
		t.Errorf("Expected label %q, got %q", "fracture", loaded.Annotation.Label)
	}

	if loaded.Annotation.RectSize != 400 {
		t.Errorf("Expected rect size 400, got %d", loaded.Annotation.RectSize)
	}

	if loaded.HalfExtent() != 200 {
		t.Errorf("Expected half extent 200, got %g", loaded.HalfExtent())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

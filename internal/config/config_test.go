package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port, got %q", cfg.APIPort)
	}
	if cfg.PostgresDSN != "" {
		t.Fatalf("expected persistence disabled by default, got %q", cfg.PostgresDSN)
	}
	if cfg.ItemDelayMS != 500 {
		t.Fatalf("expected default item delay, got %d", cfg.ItemDelayMS)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("ITEM_DELAY_MS", "0")
	t.Setenv("CLASSIFIER_STRATEGY", "scoring")

	cfg := Load()

	if cfg.APIPort != "9999" {
		t.Fatalf("expected env api port, got %q", cfg.APIPort)
	}
	if cfg.ItemDelayMS != 0 {
		t.Fatalf("expected zero item delay, got %d", cfg.ItemDelayMS)
	}
	if cfg.ClassifierStrategy != "scoring" {
		t.Fatalf("expected scoring strategy, got %q", cfg.ClassifierStrategy)
	}
}

func TestLoadProfileDefaultsWithoutPath(t *testing.T) {
	profile, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.BrandName != "Thrivera" {
		t.Fatalf("expected compiled-in brand name, got %q", profile.BrandName)
	}
	if len(profile.Collections) != 5 {
		t.Fatalf("expected 5 collections, got %d", len(profile.Collections))
	}
}

func TestLoadProfilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	overlay := "brand_name: Aurora\nseo_closing: Shop the Aurora collection.\n"
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.BrandName != "Aurora" {
		t.Fatalf("expected overridden brand name, got %q", profile.BrandName)
	}
	if profile.SEOClosing != "Shop the Aurora collection." {
		t.Fatalf("expected overridden closing, got %q", profile.SEOClosing)
	}
	// Sections the overlay does not name keep their defaults.
	if profile.Default != domain.CollectionEverydayComforts {
		t.Fatalf("expected default collection preserved, got %q", profile.Default)
	}
	if len(profile.VoiceTransforms) == 0 {
		t.Fatalf("expected voice transforms preserved")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile("/nonexistent/profile.yaml"); err == nil {
		t.Fatalf("expected error for missing profile file")
	}
}

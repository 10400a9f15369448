package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// LoadProfile returns the compiled-in brand profile, optionally overlaid
// with a YAML file. The overlay is unmarshalled on top of the defaults, so
// a partial file overrides only the sections it names.
func LoadProfile(path string) (domain.Profile, error) {
	profile := domain.DefaultProfile()
	if path == "" {
		return profile, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return domain.Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return profile, nil
}

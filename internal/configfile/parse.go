package configfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// Parse reads the config file at path and decodes it into cfg, selecting a
// decoder by file extension. A parse failure always signals KindValidation —
// a malformed project config is a usage error, not a runtime fault.
func Parse(path string, cfg *domain.ExtractionConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.WrapError(domain.KindIO, err, "read config file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(raw, cfg); err != nil {
			return domain.ValidationError("config_file", "parse TOML config %s: %v", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return domain.ValidationError("config_file", "parse YAML config %s: %v", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, cfg); err != nil {
			return domain.ValidationError("config_file", "parse JSON config %s: %v", path, err)
		}
	default:
		return domain.ValidationError("config_file", "unrecognized config file extension: %s", path)
	}
	return nil
}

// Load discovers and parses the nearest kreuzberg config file above
// startDir, returning a zero ExtractionConfig (not an error) when none exists.
func Load(startDir string) (domain.ExtractionConfig, error) {
	var cfg domain.ExtractionConfig
	path, err := Discover(startDir)
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	if err := Parse(path, &cfg); err != nil {
		return domain.ExtractionConfig{}, err
	}
	return cfg, nil
}

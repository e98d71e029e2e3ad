package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	LibraryDB string `toml:"library_db"`
	LogDir    string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// MusicBrainz contains configuration for the MusicBrainz web service.
type MusicBrainz struct {
	BaseURL        string  `toml:"base_url"`
	UserAgent      string  `toml:"user_agent"`
	RateLimit      float64 `toml:"rate_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	// ExtraTags names consensus fields sent as additional search terms.
	ExtraTags []string `toml:"extra_tags"`
}

// Match contains every tunable of the matching engine.
type Match struct {
	StrongRecThresh  float64 `toml:"strong_rec_thresh"`
	MediumRecThresh  float64 `toml:"medium_rec_thresh"`
	RecGapThresh     float64 `toml:"rec_gap_thresh"`
	TrackLengthGrace float64 `toml:"track_length_grace"`
	TrackLengthMax   float64 `toml:"track_length_max"`

	PreferredMedia     []string `toml:"preferred_media"`
	PreferredCountries []string `toml:"preferred_countries"`
	PreferOriginalYear bool     `toml:"prefer_original_year"`

	// Timid disables the early return on a confident ID match.
	Timid bool `toml:"timid"`

	Required []string `toml:"required"`
	Ignored  []string `toml:"ignored"`

	// MaxRec maps a penalty category to the highest recommendation allowed
	// while that penalty applies ("none", "low", "medium", "strong").
	MaxRec map[string]string `toml:"max_rec"`

	// DistanceWeights overrides individual category weights.
	DistanceWeights map[string]float64 `toml:"distance_weights"`
}

// Config encapsulates all configuration values for Cadenza.
type Config struct {
	Paths       Paths       `toml:"paths"`
	MusicBrainz MusicBrainz `toml:"musicbrainz"`
	Match       Match       `toml:"match"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cadenza/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the annotated sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if pathValue[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

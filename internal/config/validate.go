package config

import (
	"errors"
	"fmt"
	"regexp"

	"cadenza/internal/autotag"
)

// albumFields are the release-level field names accepted by required and
// extra_tags lists.
var albumFields = map[string]struct{}{
	"year":          {},
	"originalyear":  {},
	"label":         {},
	"barcode":       {},
	"catalognum":    {},
	"country":       {},
	"media":         {},
	"albumdisambig": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMusicBrainz() error {
	if c.MusicBrainz.RateLimit <= 0 {
		return errors.New("musicbrainz.rate_limit must be positive")
	}
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		return errors.New("musicbrainz.timeout_seconds must be positive")
	}
	for _, field := range c.MusicBrainz.ExtraTags {
		if _, ok := albumFields[field]; !ok {
			return fmt.Errorf("musicbrainz.extra_tags: unknown field %q", field)
		}
	}
	return nil
}

func (c *Config) validateMatch() error {
	if c.Match.StrongRecThresh < 0 || c.Match.MediumRecThresh < 0 || c.Match.RecGapThresh < 0 {
		return errors.New("match thresholds must be non-negative")
	}
	if c.Match.TrackLengthGrace < 0 || c.Match.TrackLengthMax < 0 {
		return errors.New("match.track_length_grace and match.track_length_max must be non-negative")
	}
	for _, field := range c.Match.Required {
		if _, ok := albumFields[field]; !ok {
			return fmt.Errorf("match.required: unknown field %q", field)
		}
	}
	for key, value := range c.Match.MaxRec {
		if _, err := autotag.ParseRecommendation(value); err != nil {
			return fmt.Errorf("match.max_rec.%s: %w", key, err)
		}
	}
	for _, pattern := range c.Match.PreferredMedia {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("match.preferred_media pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range c.Match.PreferredCountries {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("match.preferred_countries pattern %q: %w", pattern, err)
		}
	}
	for key, weight := range c.Match.DistanceWeights {
		if weight < 0 {
			return fmt.Errorf("match.distance_weights.%s must be non-negative", key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// MatcherSettings converts the [match] section into engine settings,
// layering configured overrides onto the stock defaults.
func (c *Config) MatcherSettings() (autotag.Settings, error) {
	settings := autotag.DefaultSettings()
	settings.StrongRecThresh = c.Match.StrongRecThresh
	settings.MediumRecThresh = c.Match.MediumRecThresh
	settings.RecGapThresh = c.Match.RecGapThresh
	settings.TrackLengthGrace = c.Match.TrackLengthGrace
	settings.TrackLengthMax = c.Match.TrackLengthMax
	settings.PreferredMedia = c.Match.PreferredMedia
	settings.PreferredCountries = c.Match.PreferredCountries
	settings.PreferOriginalYear = c.Match.PreferOriginalYear
	settings.Timid = c.Match.Timid
	settings.Required = c.Match.Required
	settings.Ignored = c.Match.Ignored
	settings.ExtraTags = c.MusicBrainz.ExtraTags

	if len(c.Match.MaxRec) > 0 {
		settings.MaxRec = make(map[string]autotag.Recommendation, len(c.Match.MaxRec))
		for key, value := range c.Match.MaxRec {
			rec, err := autotag.ParseRecommendation(value)
			if err != nil {
				return autotag.Settings{}, fmt.Errorf("match.max_rec.%s: %w", key, err)
			}
			settings.MaxRec[key] = rec
		}
	}

	if len(c.Match.DistanceWeights) > 0 {
		weights := autotag.DefaultWeights()
		for key, weight := range c.Match.DistanceWeights {
			weights[key] = weight
		}
		settings.Weights = weights
	}

	return settings, nil
}

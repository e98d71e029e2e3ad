package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMusicBrainz()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDB) == "" {
		c.Paths.LibraryDB = defaultLibraryDB
	}
	if c.Paths.LibraryDB, err = expandPath(c.Paths.LibraryDB); err != nil {
		return fmt.Errorf("paths.library_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMusicBrainz() {
	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzBaseURL
	}
	c.MusicBrainz.UserAgent = strings.TrimSpace(c.MusicBrainz.UserAgent)
	if c.MusicBrainz.UserAgent == "" {
		c.MusicBrainz.UserAgent = defaultMusicBrainzAgent
	}
	if c.MusicBrainz.RateLimit == 0 {
		c.MusicBrainz.RateLimit = defaultMusicBrainzRate
	}
	if c.MusicBrainz.TimeoutSeconds == 0 {
		c.MusicBrainz.TimeoutSeconds = defaultMusicBrainzTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

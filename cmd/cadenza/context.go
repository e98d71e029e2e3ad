package main

import (
	"log/slog"
	"strings"
	"sync"

	"cadenza/internal/autotag"
	"cadenza/internal/config"
	"cadenza/internal/library"
	"cadenza/internal/logging"
	"cadenza/internal/musicbrainz"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		LogDir: cfg.Paths.LogDir,
	})
}

func (c *commandContext) openStore() (*library.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return library.Open(cfg.Paths.LibraryDB)
}

// newMatcher wires the MusicBrainz source into a matcher configured from
// the loaded settings. timid, when set, overrides the config value.
func (c *commandContext) newMatcher(timid bool) (*autotag.Matcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}

	settings, err := cfg.MatcherSettings()
	if err != nil {
		return nil, err
	}
	if timid {
		settings.Timid = true
	}

	source := musicbrainz.New(cfg, logger)
	return autotag.New(source, settings, autotag.WithLogger(logger))
}

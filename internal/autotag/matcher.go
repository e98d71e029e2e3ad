package autotag

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"cadenza/internal/logging"
)

// vaArtists are artist values that signal a various-artists release. They
// suppress the track-artist penalty and feed the VA likelihood heuristic.
var vaArtists = map[string]struct{}{
	"":                {},
	"various artists": {},
	"various":         {},
	"va":              {},
	"unknown":         {},
}

func isVAArtist(artist string) bool {
	_, ok := vaArtists[strings.ToLower(artist)]
	return ok
}

// Settings holds every tunable the matching engine reads. Callers build one
// from configuration; the engine never consults global state.
type Settings struct {
	// TrackLengthGrace is the duration difference in seconds forgiven
	// before the length penalty starts. TrackLengthMax is the difference
	// that earns the full penalty.
	TrackLengthGrace float64
	TrackLengthMax   float64

	// Distance thresholds for recommendation levels, compared against the
	// best candidate's aggregate score.
	StrongRecThresh float64
	MediumRecThresh float64
	RecGapThresh    float64

	// MaxRec caps the recommendation when the named penalty category
	// applies to the best candidate.
	MaxRec map[string]Recommendation

	// Required lists release fields a candidate must carry; Ignored lists
	// penalty categories that disqualify a candidate outright.
	Required []string
	Ignored  []string

	// PreferredMedia and PreferredCountries are ordered regular-expression
	// pattern lists; earlier entries are preferred. Media patterns also
	// match a leading "<n>x" count prefix.
	PreferredMedia     []string
	PreferredCountries []string

	// PreferOriginalYear penalizes reissues by their distance from the
	// original release year.
	PreferOriginalYear bool

	// Timid disables the early return on a confident ID match.
	Timid bool

	// ExtraTags names consensus fields forwarded to the search backend as
	// additional terms.
	ExtraTags []string

	Weights Weights
}

// DefaultWeights returns the stock per-category distance weights.
func DefaultWeights() Weights {
	return Weights{
		"artist":           3.0,
		"album":            3.0,
		"media":            1.0,
		"mediums":          1.0,
		"year":             1.0,
		"country":          0.5,
		"label":            0.5,
		"catalognum":       0.5,
		"albumdisambig":    0.5,
		"album_id":         5.0,
		"tracks":           2.0,
		"missing_tracks":   0.9,
		"unmatched_tracks": 0.6,
		"track_title":      3.0,
		"track_artist":     2.0,
		"track_index":      1.0,
		"track_length":     2.0,
		"track_id":         5.0,
		"medium":           1.0,
	}
}

// DefaultSettings returns the stock matching tunables.
func DefaultSettings() Settings {
	return Settings{
		TrackLengthGrace: 10,
		TrackLengthMax:   30,
		StrongRecThresh:  0.04,
		MediumRecThresh:  0.25,
		RecGapThresh:     0.25,
		Weights:          DefaultWeights(),
	}
}

// Matcher reconciles local items against canonical metadata supplied by a
// Source. A Matcher is immutable after construction and safe for concurrent
// use; every call builds its own candidate state.
type Matcher struct {
	source   Source
	settings Settings
	plugins  []Plugin
	logger   *slog.Logger

	mediaPatterns   []*regexp.Regexp
	countryPatterns []*regexp.Regexp
}

// Option customizes Matcher construction.
type Option func(*Matcher)

// WithLogger attaches a logger for per-candidate diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPlugins registers extra distance contributors.
func WithPlugins(plugins ...Plugin) Option {
	return func(m *Matcher) {
		m.plugins = append(m.plugins, plugins...)
	}
}

// New builds a Matcher around a catalog source. Preferred media and country
// patterns are compiled once here; invalid patterns fail construction.
func New(source Source, settings Settings, opts ...Option) (*Matcher, error) {
	if source == nil {
		return nil, errors.New("autotag: nil source")
	}
	if settings.TrackLengthMax < 0 || settings.TrackLengthGrace < 0 {
		return nil, errors.New("autotag: negative track length tunables")
	}
	if settings.StrongRecThresh < 0 || settings.MediumRecThresh < 0 || settings.RecGapThresh < 0 {
		return nil, errors.New("autotag: negative recommendation thresholds")
	}
	if settings.Weights == nil {
		settings.Weights = DefaultWeights()
	}

	m := &Matcher{
		source:   source,
		settings: settings,
		logger:   logging.NewNop(),
	}

	for _, pat := range settings.PreferredMedia {
		re, err := regexp.Compile(`(?i)^(\d+x)?(?:` + pat + `)`)
		if err != nil {
			return nil, fmt.Errorf("autotag: preferred media pattern %q: %w", pat, err)
		}
		m.mediaPatterns = append(m.mediaPatterns, re)
	}
	for _, pat := range settings.PreferredCountries {
		re, err := regexp.Compile(`(?i)^(?:` + pat + `)`)
		if err != nil {
			return nil, fmt.Errorf("autotag: preferred country pattern %q: %w", pat, err)
		}
		m.countryPatterns = append(m.countryPatterns, re)
	}

	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

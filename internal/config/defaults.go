package config

const (
	defaultLibraryDB          = "~/.local/share/cadenza/library.db"
	defaultLogDir             = "~/.local/share/cadenza/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMusicBrainzBaseURL = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzAgent   = "cadenza/dev (https://codeberg.org/cadenza/cadenza)"
	// The MusicBrainz guideline for anonymous clients is one request per
	// second.
	defaultMusicBrainzRate    = 1.0
	defaultMusicBrainzTimeout = 30

	defaultStrongRecThresh  = 0.04
	defaultMediumRecThresh  = 0.25
	defaultRecGapThresh     = 0.25
	defaultTrackLengthGrace = 10.0
	defaultTrackLengthMax   = 30.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDB: defaultLibraryDB,
			LogDir:    defaultLogDir,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:        defaultMusicBrainzBaseURL,
			UserAgent:      defaultMusicBrainzAgent,
			RateLimit:      defaultMusicBrainzRate,
			TimeoutSeconds: defaultMusicBrainzTimeout,
		},
		Match: Match{
			StrongRecThresh:  defaultStrongRecThresh,
			MediumRecThresh:  defaultMediumRecThresh,
			RecGapThresh:     defaultRecGapThresh,
			TrackLengthGrace: defaultTrackLengthGrace,
			TrackLengthMax:   defaultTrackLengthMax,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultConfigPath            = "~/.config/moviedb/config.toml"
	defaultDataDir               = "~/.local/share/moviedb"
	defaultLogDir                = "~/.local/share/moviedb/logs"
	defaultDatabase              = "film.db"
	defaultOMDbBaseURL           = "https://www.omdbapi.com/"
	defaultOMDbPlot              = "short"
	defaultOMDbTimeoutSeconds    = 10
	defaultOMDbMaxResults        = 5
	defaultOMDbRequestsPerSecond = 5
	defaultOMDbBurst             = 10
	defaultOMDbBreakerEnabled    = true
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Store: Store{
			Database: defaultDatabase,
		},
		OMDb: OMDb{
			BaseURL:           defaultOMDbBaseURL,
			Plot:              defaultOMDbPlot,
			TimeoutSeconds:    defaultOMDbTimeoutSeconds,
			MaxResults:        defaultOMDbMaxResults,
			RequestsPerSecond: defaultOMDbRequestsPerSecond,
			Burst:             defaultOMDbBurst,
			BreakerEnabled:    defaultOMDbBreakerEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

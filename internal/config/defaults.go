package config

const (
	defaultTagsPath  = "~/.config/epsync/tags.toml"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultTieBreak  = "score"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TagsPath: defaultTagsPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Index: Index{
			TieBreak: defaultTieBreak,
		},
	}
}

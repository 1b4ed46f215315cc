package config

const (
	defaultTransformMode = "strict"
	defaultPreviewLimit  = 20
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultLogDir        = "~/.local/share/tagpivot/logs"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transform: Transform{
			Mode: defaultTransformMode,
		},
		Preview: Preview{
			Limit: defaultPreviewLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			LogDir: defaultLogDir,
		},
	}
}

package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrInvalidBackend    = goerr.New("invalid repository backend")
	ErrMissingAuthConfig = goerr.New("authentication configuration is required")
	ErrInvalidLogLevel   = goerr.New("invalid log level")
	ErrInvalidLogFormat  = goerr.New("invalid log format")
)

// Context keys for error values
const (
	BackendKey   = "backend"
	FlagKey      = "flag"
	LogLevelKey  = "log_level"
	LogFormatKey = "log_format"
)

// Package config provides error definitions for configuration management
package config

import "errors"

// Configuration validation errors
var (
	ErrInvalidAppName     = errors.New("invalid application name")
	ErrInvalidEnvironment = errors.New("invalid environment")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidPoint       = errors.New("invalid point coordinates")
	ErrInvalidRange       = errors.New("invalid number range")
)

// Configuration loading errors
var (
	ErrConfigFileNotFound  = errors.New("configuration file not found")
	ErrUnsupportedFormat   = errors.New("unsupported configuration format")
	ErrEnvironmentVarError = errors.New("environment variable error")
)

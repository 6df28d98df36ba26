// Package config provides configuration management for the point demo
package config

import (
	"github.com/najoast/pointdemo/geometry"
)

// Environment represents the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// String returns the string representation of Environment
func (e Environment) String() string {
	return string(e)
}

// IsValid checks if the environment is valid
func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvTesting, EnvProduction:
		return true
	default:
		return false
	}
}

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	return string(l)
}

// IsValid checks if the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// Default values of the demo run
const (
	DefaultThreshold    = 10
	DefaultBigMessage   = "That's a big sum!"
	DefaultSmallMessage = "The sum is small."
)

// Config represents the complete demo configuration
type Config struct {
	// Application configuration
	App AppConfig `yaml:"app" json:"app"`

	// Logging configuration
	Log LogConfig `yaml:"log" json:"log"`

	// Demo script inputs
	Demo DemoConfig `yaml:"demo" json:"demo"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string      `yaml:"name" json:"name"`
	Version     string      `yaml:"version" json:"version"`
	Environment Environment `yaml:"environment" json:"environment"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	// Log level
	Level LogLevel `yaml:"level" json:"level"`

	// Log format (json, text)
	Format string `yaml:"format" json:"format"`

	// Output destination (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`
}

// DemoConfig holds the literal inputs of the demo script
type DemoConfig struct {
	// Point whose distance from the origin is printed
	Point geometry.Point `yaml:"point" json:"point"`

	// Numbers to sum
	Numbers []int `yaml:"numbers" json:"numbers"`

	// Range replaces Numbers with [Start, End) when set
	Range *RangeConfig `yaml:"range,omitempty" json:"range,omitempty"`

	// Sums strictly greater than Threshold select BigMessage
	Threshold int `yaml:"threshold" json:"threshold"`

	BigMessage   string `yaml:"big_message" json:"big_message"`
	SmallMessage string `yaml:"small_message" json:"small_message"`
}

// MaxRangeLength bounds how many numbers a range may generate
const MaxRangeLength = 1 << 20

// RangeConfig is a half-open integer range
type RangeConfig struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Len returns the number of integers in the range, or -1 when End is
// before Start. The result saturates at MaxRangeLength+1.
func (r RangeConfig) Len() int {
	if r.End < r.Start {
		return -1
	}
	// Unsigned subtraction stays exact even when End-Start overflows int
	n := uint64(r.End) - uint64(r.Start)
	if n > MaxRangeLength {
		return MaxRangeLength + 1
	}
	return int(n)
}

// IsValid reports whether the range is ordered and within MaxRangeLength
func (r RangeConfig) IsValid() bool {
	n := r.Len()
	return n >= 0 && n <= MaxRangeLength
}

// Sequence returns the numbers the script sums. An invalid range yields
// no numbers.
func (d DemoConfig) Sequence() []int {
	if d.Range == nil {
		return d.Numbers
	}
	if !d.Range.IsValid() {
		return nil
	}
	seq := make([]int, 0, d.Range.Len())
	for i := d.Range.Start; i < d.Range.End; i++ {
		seq = append(seq, i)
	}
	return seq
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "pointdemo",
			Version:     "1.0.0",
			Environment: EnvDevelopment,
		},
		Log: LogConfig{
			Level:  LogLevelWarn,
			Format: "text",
			Output: "stderr",
		},
		Demo: DefaultDemoConfig(),
	}
}

// Clone returns a deep copy of c
func (c *Config) Clone() *Config {
	clone := *c
	if c.Demo.Numbers != nil {
		clone.Demo.Numbers = append([]int(nil), c.Demo.Numbers...)
	}
	if c.Demo.Range != nil {
		r := *c.Demo.Range
		clone.Demo.Range = &r
	}
	return &clone
}

// DefaultDemoConfig returns the inputs that produce the reference output
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Point:        geometry.NewPoint(3, 4),
		Numbers:      []int{1, 2, 3, 4, 5},
		Threshold:    DefaultThreshold,
		BigMessage:   DefaultBigMessage,
		SmallMessage: DefaultSmallMessage,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return ErrInvalidAppName
	}
	if !c.App.Environment.IsValid() {
		return ErrInvalidEnvironment
	}

	if !c.Log.Level.IsValid() {
		return ErrInvalidLogLevel
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	if !c.Demo.Point.IsFinite() {
		return ErrInvalidPoint
	}
	if r := c.Demo.Range; r != nil && !r.IsValid() {
		return ErrInvalidRange
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/problemkit/problem"
	"github.com/kbukum/problemkit/server/middleware"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string       `yaml:"host" mapstructure:"host"`
	Port         int          `yaml:"port" mapstructure:"port"`
	ReadTimeout  int          `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int          `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int          `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	Mode         string       `yaml:"mode" mapstructure:"mode"`                   // gin mode: debug, release, test
	Errors       ErrorsConfig `yaml:"errors" mapstructure:"errors"`
}

// ErrorsConfig configures how failures are rendered.
type ErrorsConfig struct {
	// MaskInternalDetail hides the message of unclassified failures from
	// clients. The message is still logged.
	MaskInternalDetail bool   `yaml:"mask_internal_detail" mapstructure:"mask_internal_detail"`
	ContentType        string `yaml:"content_type" mapstructure:"content_type"`
	OmitStack          bool   `yaml:"omit_stack" mapstructure:"omit_stack"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.Mode == "" {
		c.Mode = gin.ReleaseMode
	}
	if c.Errors.ContentType == "" {
		c.Errors.ContentType = problem.ContentType
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	switch c.Mode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("server.mode must be one of [debug, release, test] (got: %s)", c.Mode)
	}
	return nil
}

// Options converts the errors section into error handler options.
func (c ErrorsConfig) Options() []middleware.ErrorHandlerOption {
	return []middleware.ErrorHandlerOption{
		middleware.WithMaskInternalDetail(c.MaskInternalDetail),
		middleware.WithContentType(c.ContentType),
		middleware.WithStackTrace(!c.OmitStack),
	}
}

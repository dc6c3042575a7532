package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/problemkit/logger"
	"github.com/kbukum/problemkit/problem"
)

// defaults holds every ServiceConfig key together with its default. Each
// key is also bound to its environment variable, so an env var overrides
// the file even when the file omits the key.
var defaults = map[string]any{
	"name":        "",
	"environment": "development",
	"version":     "",
	"debug":       false,

	"logging.level":     "info",
	"logging.format":    "console",
	"logging.output":    "stdout",
	"logging.no_color":  false,
	"logging.timestamp": true,
	"logging.caller":    false,

	"server.host":          "",
	"server.port":          8080,
	"server.read_timeout":  15,
	"server.write_timeout": 15,
	"server.idle_timeout":  60,
	"server.mode":          "",

	"server.errors.mask_internal_detail": false,
	"server.errors.content_type":         problem.ContentType,
	"server.errors.omit_stack":           false,

	"telemetry.enabled":     false,
	"telemetry.endpoint":    "localhost:4318",
	"telemetry.insecure":    true,
	"telemetry.sample_rate": 1.0,
}

// FileSystem abstracts the file lookups LoadConfig performs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFileSystem struct{}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file without overriding variables already set.
func (osFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

type loadOptions struct {
	fs         FileSystem
	configFile string
	envFile    string
	envPrefix  string
}

// Option configures LoadConfig.
type Option func(*loadOptions)

// WithFileSystem replaces the file system used to find and read files.
func WithFileSystem(fs FileSystem) Option {
	return func(o *loadOptions) { o.fs = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// WithEnvPrefix namespaces environment variables: with prefix "APP",
// server.port is read from APP_SERVER_PORT.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// LoadConfig loads configuration for a service into cfg. Sources, lowest
// precedence first: built-in defaults, config.yml, the .env file, the
// process environment.
func LoadConfig(serviceName string, cfg any, opts ...Option) error {
	o := loadOptions{fs: osFileSystem{}}
	for _, opt := range opts {
		opt(&o)
	}

	v := newViper(o.envPrefix)

	if path := firstExisting(o.fs, o.configFile, configCandidates(serviceName)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn("Failed to load config file", map[string]interface{}{
				"file":  path,
				"error": err.Error(),
			})
		}
	}

	// Bound env keys are read at unmarshal time, so loading the .env file
	// after the config file still lets it override file values.
	if path := firstExisting(o.fs, o.envFile, envCandidates(serviceName)); path != "" {
		if err := o.fs.LoadEnv(path); err != nil {
			logger.Warn("Failed to load env file", map[string]interface{}{
				"file":  path,
				"error": err.Error(),
			})
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// newViper returns a viper instance with defaults registered and every key
// bound to its env var (dots become underscores).
func newViper(envPrefix string) *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}
	return v
}

// EnvVar returns the environment variable read for a config key.
func EnvVar(prefix, key string) string {
	name := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if prefix == "" {
		return name
	}
	return strings.ToUpper(prefix) + "_" + name
}

func configCandidates(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}
}

func envCandidates(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/.env", serviceName),
		"./.env",
	}
}

// firstExisting returns explicit when set (and present) or else the first
// candidate that exists.
func firstExisting(fs FileSystem, explicit string, candidates []string) string {
	if explicit != "" {
		if fs.Exists(explicit) {
			return explicit
		}
		return ""
	}
	for _, path := range candidates {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

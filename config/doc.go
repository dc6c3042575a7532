// Package config loads service configuration.
//
// LoadConfig reads config.yml (searched under ./cmd/<service>/, ./config/
// and the working directory), then a .env file, then the process
// environment. Environment variables map onto nested keys by replacing
// underscores with dots, so SERVER_ERRORS_MASK_INTERNAL_DETAIL=true sets
// server.errors.mask_internal_detail. Every ServiceConfig key has a
// registered default, so an environment override applies even when no file
// sets the key. WithEnvPrefix namespaces the variables (APP_SERVER_PORT).
//
//	var cfg config.ServiceConfig
//	if err := config.LoadConfig("problemkit-demo", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config

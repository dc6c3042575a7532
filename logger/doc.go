// Package logger provides structured logging backed by zerolog.
//
// It is the logging sink of the error handler: failures are reported through
// a component-scoped *Logger with map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("orders")
//	log.WithComponent("repository").Warn("lookup failed", logger.Fields("id", 42))
package logger

// Package logger provides structured logging for glass using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers fetched by name from a small registry.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get(logger.ComponentFactory)
//	log.Debug("dispatch", logger.Fields(logger.FieldProvider, "openai"))
package logger

// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Logs go to stderr by
// default so command output on stdout stays machine readable.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("stripe")
//	log.Info("scan finished", logger.Fields("object", "balance", "rows", 3))
package logger

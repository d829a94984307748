// Package logger provides structured logging on top of zerolog.
//
// Loggers are tagged with a service name and optionally a component, and
// take fields as plain maps:
//
//	log := logger.WithComponent("upload")
//	log.Info("stored upload", logger.Fields("name", name, "size", size))
//
// Output goes to stdout or stderr, and additionally to a file when
// logging.file is configured.
package logger

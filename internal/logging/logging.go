// Package logging wires up the process-wide zap logger, grounded on the
// dev/prod split used in the teacher's cmd/api/main.go.
package logging

import "go.uber.org/zap"

// New builds the logger appropriate for env. "dev" (or "development") gets
// a human-readable development config; anything else gets the production
// JSON config the teacher's cmd/api/main.go uses.
func New(env string) (*zap.Logger, error) {
	if env == "dev" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Nop returns a no-op logger for tests and callers that don't care about
// log output, mirroring zap.NewNop() used throughout the teacher's test
// files and simple CLI entrypoints.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Package logging builds the process-wide zap logger. It is constructed
// once in main and injected everywhere, never probed off a global.
package logging

import "go.uber.org/zap"

// NewLogger returns the production logger used by the service.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Package logging builds the structured logger shared by the server
// components, using the Uber zap library.
package logging

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

// New returns a development-config SugaredLogger at the given level
// ("debug", "info", "warn", "error").
func New(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return zl.Sugar(), nil
}

// Sync flushes buffered entries. Syncing a terminal returns os.ErrInvalid
// on some platforms, which is ignored.
func Sync(log *zap.SugaredLogger) error {
	if err := log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}

// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateFrontend creates the frontend with the given name. The name has to
// be resolved already, auto detection is handled by the detector.
func CreateFrontend(logger *log.Logger, name string, scale int) (frontend.Frontend, error) {
	switch name {
	case options.FrontendWindow:
		return window.New(logger, scale), nil
	case options.FrontendTerminal:
		return terminal.New(logger), nil
	case options.FrontendHeadless:
		return headless.New(), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}

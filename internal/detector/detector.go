// Package detector handles frontend detection for the current environment.
package detector

import (
	"os"
	"runtime"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector selects the frontend to use based on options and the environment
// that the process is running in.
type Detector struct {
	logger *log.Logger

	goos       string
	getenv     func(key string) string
	isTerminal func() bool
}

// New creates a new frontend detector for the current process environment.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		goos:       runtime.GOOS,
		getenv:     os.Getenv,
		isTerminal: stdoutIsTerminal,
	}
}

// Detect returns the name of the frontend to use. An explicitly chosen
// frontend is returned as is, otherwise a window is preferred when a display
// is available, followed by the terminal and finally the headless frontend.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" && opts.Frontend != options.FrontendAuto {
		return opts.Frontend
	}

	frontend := d.detectFromEnvironment()
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("os", d.goos))
	return frontend
}

func (d *Detector) detectFromEnvironment() string {
	switch {
	case d.hasDisplay():
		return options.FrontendWindow
	case d.isTerminal():
		return options.FrontendTerminal
	default:
		return options.FrontendHeadless
	}
}

// hasDisplay returns whether a graphical display is available. Only unix
// like systems advertise their display server through the environment.
func (d *Detector) hasDisplay() bool {
	switch d.goos {
	case "windows", "darwin":
		return true
	case "js", "wasip1", "android", "ios":
		return false
	}
	return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != ""
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

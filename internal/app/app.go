// Package app provides the main application helpers for the interpreter.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the name and version of the program.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", VersionString(version, commit)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// VersionString returns the version with the shortened commit hash appended.
func VersionString(version, commit string) string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// PrintInfo prints the information about the program image and the chosen frontend.
func PrintInfo(logger *log.Logger, opts options.Program, frontendName string, imageSize int) {
	if opts.Quiet {
		return
	}

	if opts.Disasm {
		logger.Debug("Disassembling CHIP-8 program",
			log.String("file", opts.Input),
			log.Int("size", imageSize),
		)
		return
	}

	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.String("frontend", frontendName),
		log.Int("size", imageSize),
	)
	if opts.Cycles > 0 {
		logger.Info("Cycle limit set", log.Int("cycles", int(opts.Cycles)))
	}
}

// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the CLI commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDogs prints a dog listing using the configured output format.
func (ow *OutWriter) WriteDogs(dogs []schema.Dog, cfg *contract.Config) error {
	return WriteDogs(dogs, cfg)
}

// WriteDog prints a single dog using the configured output format.
func (ow *OutWriter) WriteDog(dog schema.Dog, cfg *contract.Config) error {
	return WriteDogs([]schema.Dog{dog}, cfg)
}

// WriteAggregates prints the per-company defect aggregates using the configured output format.
func (ow *OutWriter) WriteAggregates(result *schema.AggregateResult, cfg *contract.Config) error {
	return WriteAggregates(result, cfg)
}

// getMaxTableTextWidth calculates the maximum width for the free-text column of a table
// based on terminal width and the space taken by the fixed columns.
func getMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - fixedWidth - 20
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}

// labelFor picks the colored or plain quality label.
func labelFor(cfg *contract.Config, okPercent float64) string {
	if cfg.UseColors {
		return contract.GetColorLabel(okPercent)
	}
	return contract.GetPlainLabel(okPercent)
}

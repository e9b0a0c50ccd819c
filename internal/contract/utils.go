package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/workbench/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor marks near-perfect production.
	GoodColor      = color.New(color.FgCyan)              // GoodColor marks healthy production.
	FairColor      = color.New(color.FgYellow)            // FairColor marks production worth a look.
	PoorColor      = color.New(color.FgRed, color.Bold)   // PoorColor marks production with too many defects.
)

// GetPlainLabel returns the quality label for an OK percentage. This is the core logic
// used for CSV, JSON, and table printing.
func GetPlainLabel(okPercent float64) string {
	return string(schema.GetQualityLabel(okPercent))
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(okPercent float64) string {
	label := schema.GetQualityLabel(okPercent)
	text := string(label)

	switch label {
	case schema.ExcellentQuality:
		return ExcellentColor.Sprint(text)
	case schema.GoodQuality:
		return GoodColor.Sprint(text)
	case schema.FairQuality:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is space for both the "..." and at least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is space for both the "..." and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/workbench/internal/contract"
)

// writeWithFile runs write against the configured output, stdout when outputFile is empty.
// A note naming the file goes to stderr once a file write succeeds.
func writeWithFile(outputFile string, write func(io.Writer) error, doneMsg string) error {
	out, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	toFile := out != os.Stdout
	if toFile {
		defer func() { _ = out.Close() }()
	}

	if err := write(out); err != nil {
		return err
	}
	if toFile {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", doneMsg, outputFile)
	}
	return nil
}

// writeJSON encodes v with two-space indentation and a trailing newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes header and then whatever rows writeRows emits.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// percentFormatter renders percentages with a fixed number of decimals.
func percentFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

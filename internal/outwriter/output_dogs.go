package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/internal/parquet"
	"github.com/huangsam/workbench/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var dogCSVHeader = []string{"id", "name", "breed", "age", "weight", "intake_date"}

// WriteDogs outputs dogs, dispatching based on the output format configured.
func WriteDogs(dogs []schema.Dog, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDogsJSON(w, dogs)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDogsCSV(w, dogs)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteDogsParquet(dogs, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDogsTable(w, dogs, cfg)
		}, "Wrote table")
	}
	return nil
}

func writeDogsJSON(w io.Writer, dogs []schema.Dog) error {
	if dogs == nil {
		dogs = []schema.Dog{}
	}
	return writeJSON(w, dogs)
}

func writeDogsCSV(w io.Writer, dogs []schema.Dog) error {
	return writeCSVWithHeader(w, dogCSVHeader, func(cw *csv.Writer) error {
		for _, d := range dogs {
			rec := []string{
				strconv.FormatInt(d.ID, 10),
				d.Name,
				d.Breed,
				formatNumber(d.Age),
				formatNumber(d.Weight),
				d.IntakeDate,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeDogsTable(w io.Writer, dogs []schema.Dog, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Breed", "Age", "Weight", "Intake Date"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	// ID + Age + Weight + Intake Date, the rest is shared by name and breed
	textWidth := getMaxTableTextWidth(cfg, 40) / 2

	data := make([][]string, 0, len(dogs))
	for _, d := range dogs {
		data = append(data, []string{
			strconv.FormatInt(d.ID, 10),
			contract.TruncateText(d.Name, textWidth),
			contract.TruncateText(d.Breed, textWidth),
			formatNumber(d.Age),
			formatNumber(d.Weight),
			d.IntakeDate,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d dogs\n", len(dogs))
	return err
}

// formatNumber prints a stored number without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

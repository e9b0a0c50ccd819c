package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/workbench/core/agg"
	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/internal/parquet"
	"github.com/huangsam/workbench/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var aggregateCSVHeader = []string{
	"rank",
	"company",
	"total_production",
	"defective_count",
	"ok_count",
	"ok_percent",
	"error_percent",
	"label",
}

// WriteAggregates outputs the defect aggregates, dispatching based on the output format configured.
// JSON output keeps the wire shape of the defects endpoint.
func WriteAggregates(result *schema.AggregateResult, cfg *contract.Config) error {
	if result == nil {
		result = schema.NewAggregateResult()
	}
	fmtFloat := percentFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAggregatesCSV(w, schema.EnrichAggregates(result.Rows()), fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteAggregatesParquet(schema.EnrichAggregates(result.Rows()), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAggregatesTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

func writeAggregatesCSV(w io.Writer, rows []schema.EnrichedAggregateRow, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, aggregateCSVHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Company,
				formatNumber(r.TotalProduction),
				formatNumber(r.DefectiveCount),
				formatNumber(r.OKCount),
				fmtFloat(r.OKPercent),
				fmtFloat(r.ErrorPercent),
				string(r.Label),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAggregatesTable(w io.Writer, result *schema.AggregateResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Company", "Production", "Defective", "OK", "OK %", "Error %", "Label"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	companyWidth := getMaxTableTextWidth(cfg, 60)
	rows := schema.EnrichAggregates(result.Rows())
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.Company, companyWidth),
			formatNumber(r.TotalProduction),
			formatNumber(r.DefectiveCount),
			formatNumber(r.OKCount),
			fmtFloat(r.OKPercent),
			fmtFloat(r.ErrorPercent),
			labelFor(cfg, r.OKPercent),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	total := agg.Totals(result)
	_, err := fmt.Fprintf(w, "Showing %d companies (total production: %s, defective: %s, ok: %s%%)\n",
		len(rows), formatNumber(total.TotalProduction), formatNumber(total.DefectiveCount), fmtFloat(total.OKPercent))
	return err
}

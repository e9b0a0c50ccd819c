// Package parquet provides data structures and functions for exporting dogs and
// defect aggregates to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/workbench/core/algo"
	"github.com/huangsam/workbench/schema"
	"github.com/parquet-go/parquet-go"
)

// Dog is one dog record in Parquet form.
type Dog struct {
	ID     int64   `parquet:"id,snappy"`
	Name   string  `parquet:"name,snappy,dict"`
	Breed  string  `parquet:"breed,snappy,dict"`
	Age    float64 `parquet:"age,snappy"`
	Weight float64 `parquet:"weight,snappy"`

	// IntakeDate is kept verbatim; IntakeTime is set only when the text parses as a date.
	IntakeDate string     `parquet:"intake_date,snappy"`
	IntakeTime *time.Time `parquet:"intake_time,optional,snappy"`
}

// CompanyAggregate is one per-company defect aggregate in Parquet form.
type CompanyAggregate struct {
	Rank            int32   `parquet:"rank,snappy"`
	Company         string  `parquet:"company,snappy,dict"`
	TotalProduction float64 `parquet:"total_production,snappy"`
	DefectiveCount  float64 `parquet:"defective_count,snappy"`
	OKCount         float64 `parquet:"ok_count,snappy"`
	OKPercent       float64 `parquet:"ok_percent,snappy"`
	ErrorPercent    float64 `parquet:"error_percent,snappy"`
	Label           string  `parquet:"label,snappy,dict"`
}

// ConvertDogs converts schema.Dog values for Parquet export.
func ConvertDogs(dogs []schema.Dog) []Dog {
	result := make([]Dog, len(dogs))
	for i, d := range dogs {
		result[i] = Dog{
			ID:         d.ID,
			Name:       d.Name,
			Breed:      d.Breed,
			Age:        d.Age,
			Weight:     d.Weight,
			IntakeDate: d.IntakeDate,
		}
		if t, ok := algo.ParseDate(d.IntakeDate); ok {
			utc := t.UTC()
			result[i].IntakeTime = &utc
		}
	}
	return result
}

// ConvertAggregates converts enriched aggregate rows for Parquet export.
func ConvertAggregates(rows []schema.EnrichedAggregateRow) []CompanyAggregate {
	result := make([]CompanyAggregate, len(rows))
	for i, r := range rows {
		result[i] = CompanyAggregate{
			Rank:            int32(r.Rank),
			Company:         r.Company,
			TotalProduction: r.TotalProduction,
			DefectiveCount:  r.DefectiveCount,
			OKCount:         r.OKCount,
			OKPercent:       r.OKPercent,
			ErrorPercent:    r.ErrorPercent,
			Label:           string(r.Label),
		}
	}
	return result
}

// WriteDogsParquet writes dogs to a Parquet file.
func WriteDogsParquet(dogs []schema.Dog, outputPath string) error {
	return writeParquet(ConvertDogs(dogs), outputPath)
}

// WriteAggregatesParquet writes enriched aggregate rows to a Parquet file.
func WriteAggregatesParquet(rows []schema.EnrichedAggregateRow, outputPath string) error {
	return writeParquet(ConvertAggregates(rows), outputPath)
}

// writeParquet writes rows to outputPath with a schema inferred from T's struct tags.
func writeParquet[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

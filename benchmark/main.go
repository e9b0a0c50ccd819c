// Package main provides a performance benchmarking tool for the workbench CLI.
// It seeds synthetic dog registries of several sizes into each file-based backend, then times
// sorted listings, treating the first successful run as cold and averaging the rest as warm,
// and writes the results as CSV for performance analysis and documentation.
//
// Prerequisites:
// - workbench binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the seeded datasets are written
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/huangsam/workbench/internal/iostore"
	"github.com/huangsam/workbench/schema"
)

// BenchmarkResult holds the cold run and the average of warm runs for one listing.
type BenchmarkResult struct {
	Backend  string
	Size     int
	Sort     string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Sizes    []int
	Backends []schema.DatabaseBackend
	Sorts    []string
}

var (
	names  = []string{"Toby", "Luna", "Rex", "Nala", "Max", "Kira", "Bruno", "Lola"}
	breeds = []string{"Beagle", "Boxer", "Mixed", "Poodle", "Labrador", "Galgo"}
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:  os.Args[1],
		Timeout:  2 * time.Minute,
		Runs:     5,
		Sizes:    []int{100, 1_000, 10_000},
		Backends: []schema.DatabaseBackend{schema.JSONBackend, schema.SQLiteBackend},
		Sorts:    []string{schema.DogFieldID, schema.DogFieldName, schema.DogFieldWeight, schema.DogFieldIntakeDate},
	}

	if _, err := exec.LookPath("workbench"); err != nil {
		fmt.Printf("Prerequisites check failed: workbench binary not found in PATH\n")
		os.Exit(1)
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks seeds every backend and size, then times each sort field.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %d backends, %v timeout, %d runs\n",
		len(config.Sizes), len(config.Backends), config.Timeout, config.Runs)

	for _, backend := range config.Backends {
		for _, size := range config.Sizes {
			connStr := filepath.Join(config.WorkDir, fmt.Sprintf("dogs_%d.%s", size, backend))
			if err := seed(backend, connStr, size); err != nil {
				return nil, fmt.Errorf("seeding %s with %d dogs: %w", backend, size, err)
			}

			for _, field := range config.Sorts {
				fmt.Printf("Benchmarking %s, %d dogs, sort by %s\n", backend, size, field)
				cold, warm := runBenchmark(config, backend, connStr, field)
				results = append(results, BenchmarkResult{
					Backend:  string(backend),
					Size:     size,
					Sort:     field,
					ColdTime: cold,
					WarmTime: warm,
				})
			}
		}
	}
	return results, nil
}

// seed replaces the dataset at connStr with size synthetic dogs.
func seed(backend schema.DatabaseBackend, connStr string, size int) error {
	if err := iostore.ClearStore(backend, connStr); err != nil {
		return err
	}
	store, err := iostore.NewDogStore(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rng := rand.New(rand.NewPCG(uint64(size), 42))
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	dogs := make([]schema.Dog, size)
	for i := range dogs {
		dogs[i] = schema.Dog{
			ID:         int64(i + 1),
			Name:       names[rng.IntN(len(names))] + " " + strconv.Itoa(rng.IntN(1000)),
			Breed:      breeds[rng.IntN(len(breeds))],
			Age:        float64(rng.IntN(16)),
			Weight:     float64(rng.IntN(600)) / 10,
			IntakeDate: start.AddDate(0, 0, rng.IntN(1500)).Format(time.DateOnly),
		}
	}
	return store.Save(context.Background(), dogs)
}

// runBenchmark lists the dataset sorted by field several times and returns cold and warm timings.
func runBenchmark(config BenchmarkConfig, backend schema.DatabaseBackend, connStr, field string) (cold, warm string) {
	args := []string{
		"dogs", "list",
		"--dogs-backend", string(backend),
		"--dogs-db-connect", connStr,
		"--sort", field,
		"--output", "csv",
		"--output-file", os.DevNull,
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		err := exec.CommandContext(ctx, "workbench", args...).Run()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil {
			times = append(times, elapsed)
		}
	}

	cold, warm = "FAILED", "FAILED"
	if len(times) > 0 {
		cold = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		warm = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}
	return cold, warm
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("workbench_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"backend", "size", "sort", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Backend, strconv.Itoa(r.Size), r.Sort, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-7s %6d dogs  sort=%-10s Cold: %s, Warm: %s\n", r.Backend, r.Size, r.Sort, r.ColdTime, r.WarmTime)
	}
}

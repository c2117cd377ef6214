package bench

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jmoiron/sqlx"
	"github.com/sqlet/sqlet/internal/util/numutil"
	"github.com/sqlet/sqlet/internal/version"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  uint64
	TotalWrites uint64
}

// Run executes the same workloads against three SQLite drivers and prints
// the results side by side.
func Run(ctx context.Context) error {
	fmt.Println(version.BenchVersion())

	tmpDir, err := os.MkdirTemp("", "sqletbench_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	drivers := []struct {
		name   string
		create func(dir string) (*sqlx.DB, error)
	}{
		{name: "sqlet/sqletdrv", create: createSqletDriver},
		{name: "mattn/go-sqlite3", create: createMattnDriver},
		{name: "modernc.org/sqlite", create: createModerncDriver},
	}

	for _, drv := range drivers {
		db, err := drv.create(tmpDir)
		if err != nil {
			return fmt.Errorf("error opening %s db: %w", drv.name, err)
		}

		fmt.Printf("\n--- Benchmarks for %s ---\n", drv.name)
		results, err := runBenchmark(db, getDefaultConfig())
		if err != nil {
			db.Close()
			return fmt.Errorf("error benchmarking %s: %w", drv.name, err)
		}
		printResults(results)
		db.Close()
	}

	return nil
}

func printResults(results []benchmarkResult) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Name,
			numutil.IntWithCommas(int64(r.TotalReads)),
			numutil.IntWithCommas(int64(r.TotalWrites)),
			r.Duration,
		})
	}

	fmt.Println(tw.Render())
}

// runBenchmark executes all benchmarks, and returns results.
//
// It recreates the schema before each benchmark.
func runBenchmark(db *sqlx.DB, cfg benchmarksConfig) ([]benchmarkResult, error) {
	benchs := []func(*sqlx.DB, benchmarksConfig) (benchmarkResult, error){
		runBenchmarkSimple,
		runBenchmarkMany,
		runBenchmarkLarge,
	}

	var results []benchmarkResult

	for _, bench := range benchs {
		if err := recreateSchema(db); err != nil {
			return nil, err
		}

		res, err := bench(db, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}

/*
main.go - Database seeder

PURPOSE:
  Loads the five MAP (Modern Award Pay) export CSVs into the SQLite rate
  store, replacing any existing rows. Run once after downloading a fresh
  export, then start the server against the same database file.

USAGE:
  go run ./cmd/seed -db rates.db -dir ./data

EXPECTED FILES (under -dir):
  map-award-export-2025.csv
  map-classification-export-2025.csv
  map-wage-allowance-export-2025.csv
  map-expense-allowance-export-2025.csv
  map-penalty-export-2025.csv

SEE ALSO:
  - store/sqlite/seed.go: CSV parsing and import
*/
package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/warp/award-engine/store/sqlite"
)

func main() {
	dbPath := flag.String("db", "rates.db", "SQLite database path")
	dir := flag.String("dir", "data", "Directory containing the MAP export CSVs")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	steps := []struct {
		name string
		file string
		seed func(context.Context, string) (int, error)
	}{
		{"awards", "map-award-export-2025.csv", store.SeedAwards},
		{"classifications", "map-classification-export-2025.csv", store.SeedClassifications},
		{"wage allowances", "map-wage-allowance-export-2025.csv", store.SeedWageAllowances},
		{"expense allowances", "map-expense-allowance-export-2025.csv", store.SeedExpenseAllowances},
		{"penalty rates", "map-penalty-export-2025.csv", store.SeedPenaltyRates},
	}

	for _, s := range steps {
		path := filepath.Join(*dir, s.file)
		n, err := s.seed(ctx, path)
		if err != nil {
			log.Fatalf("Seeding %s from %s failed: %v", s.name, path, err)
		}
		log.Printf("Seeded %d %s from %s", n, s.name, path)
	}

	log.Println("Seed complete")
}

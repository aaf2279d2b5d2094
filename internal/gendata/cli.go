// Package gendata generates synthetic crime datasets for demos and tests.
package gendata

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/nkedia/crimeatlas/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0600
)

// Config holds the generator parameters.
type Config struct {
	Rows        int     // number of data rows to emit
	BadRowRatio float64 // fraction of rows made deliberately malformed
	Seed        int64   // PRNG seed, 0 means nondeterministic
	OutputCSV   string  // path of the CSV to write
	OutputGeo   string  // optional path of a matching GeoJSON boundary file
}

// Indian states and union territories as NCRB tables spell them, including
// the legacy spellings the normalizer is expected to reconcile.
var states = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal", "A & N Islands", "Chandigarh", "D&N Haveli and Daman & Diu",
	"NCT of Delhi", "Jammu & Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

var categories = []string{
	"Theft", "Burglary", "Riots", "Cheating", "Counterfeiting",
	"Kidnapping & Abduction", "Arson", "Hurt",
}

// Run writes the synthetic dataset described by cfg.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get()

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // synthetic data only
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // synthetic data only
	}

	if err := writeCSV(cfg, rng); err != nil {
		return err
	}
	log.Info(ctx, "dataset written",
		logger.String("path", cfg.OutputCSV),
		logger.Int("rows", cfg.Rows),
	)

	if cfg.OutputGeo != "" {
		if err := writeGeoJSON(cfg); err != nil {
			return err
		}
		log.Info(ctx, "boundaries written",
			logger.String("path", cfg.OutputGeo),
			logger.Int("features", len(states)),
		)
	}
	return nil
}

// writeCSV emits the NCRB-shaped table: serial, state, category, value.
func writeCSV(cfg *Config, rng *rand.Rand) error {
	f, err := os.OpenFile(cfg.OutputCSV, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Sl. No.", "State/UT", "Crime Head", "2022"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < cfg.Rows; i++ {
		state := states[rng.Intn(len(states))]
		category := categories[rng.Intn(len(categories))]
		value := strconv.Itoa(rng.Intn(5000))

		if cfg.BadRowRatio > 0 && rng.Float64() < cfg.BadRowRatio {
			// Alternate between a missing region and an unparseable value.
			if rng.Intn(2) == 0 {
				state = ""
			} else {
				value = "n/a"
			}
		}

		row := []string{strconv.Itoa(i + 1), state, category, value}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// writeGeoJSON emits one small square polygon per state, laid out on a
// grid. The shapes are placeholders; the property names and the state
// spellings are what the loader join cares about.
func writeGeoJSON(cfg *Config) error {
	fc := geojson.NewFeatureCollection()
	for i, state := range states {
		x := float64(i%6)*2 + 68
		y := float64(i/6)*2 + 8
		poly := orb.Polygon{{
			{x, y}, {x + 1.6, y}, {x + 1.6, y + 1.6}, {x, y + 1.6}, {x, y},
		}}
		feat := geojson.NewFeature(poly)
		feat.Properties["ST_NM"] = state
		fc.Append(feat)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal boundaries: %w", err)
	}
	if err := os.WriteFile(cfg.OutputGeo, data, outputFilePermission); err != nil {
		return fmt.Errorf("write boundaries: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the data generator.
func ShowHelp() {
	os.Stdout.WriteString(`Crime Atlas Data Generator
==========================

Generates a synthetic NCRB-shaped crime dataset, optionally with a
matching GeoJSON boundary file, for demos and local testing.

Usage:
  go run cmd/gendata/main.go [options]

Options:
  -rows int
        Number of data rows to generate (default 2000)
  -bad float
        Fraction of rows made deliberately malformed (default 0.01)
  -seed int
        PRNG seed for reproducible output (default 0, random)
  -out string
        Output CSV path (default "crimes.csv")
  -geo string
        Also write a matching GeoJSON boundary file to this path

Examples:
  # Generate the default dataset
  go run cmd/gendata/main.go

  # Reproducible dataset with boundaries
  go run cmd/gendata/main.go -rows 5000 -seed 42 -out crimes.csv -geo states.geojson
`)
}

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/nkedia/crimeatlas/internal/gendata"
	"github.com/nkedia/crimeatlas/pkg/logger"
)

// Default configuration constants.
const (
	defaultRows     = 2000
	defaultBadRatio = 0.01
	defaultTimeout  = 1 * time.Minute
)

func main() {
	var (
		rows   = flag.Int("rows", defaultRows, "Number of data rows to generate")
		bad    = flag.Float64("bad", defaultBadRatio, "Fraction of rows made deliberately malformed")
		seed   = flag.Int64("seed", 0, "PRNG seed for reproducible output (0 means random)")
		outCSV = flag.String("out", "crimes.csv", "Output CSV path")
		outGeo = flag.String("geo", "", "Also write a matching GeoJSON boundary file to this path")
		help   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		gendata.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &gendata.Config{
		Rows:        *rows,
		BadRowRatio: *bad,
		Seed:        *seed,
		OutputCSV:   *outCSV,
		OutputGeo:   *outGeo,
	}

	if err := gendata.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"hemosim/cmd/mockgen/engine"
	"os"
	"time"
)

func main() {
	outDir := flag.String("out", ".", "Output directory for the generated workbooks")
	rows := flag.Int("rows", 6, "Number of class intervals per blood type")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for the generated frequencies")
	commaDecimals := flag.Bool("comma-decimals", false, "Write decimal fields with a comma separator, as some source files do")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Rows:          *rows,
		Seed:          *seed,
		CommaDecimals: *commaDecimals,
	}

	fmt.Printf("Generating sample distribution workbooks (rows: %d, seed: %d) to %s...\n", cfg.Rows, cfg.Seed, *outDir)

	if err := engine.Save(*outDir, cfg); err != nil {
		fmt.Printf("Failed to generate workbooks: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}

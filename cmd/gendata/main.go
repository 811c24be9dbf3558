package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gemdash/adapters/postgres"
	"gemdash/internal/testkit"
)

func main() {
	out := flag.String("out", "data/diamonds.csv", "output file path")
	rows := flag.Int("rows", 5000, "number of diamonds")
	format := flag.String("format", "", "output format: xlsx or csv (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	seedDB := flag.Bool("postgres", false, "also load the rows into the table at DATABASE_URL")
	table := flag.String("table", postgres.DefaultTable, "postgres table name")
	flag.Parse()

	if *rows <= 0 {
		fmt.Fprintln(os.Stderr, "rows must be > 0")
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		switch strings.ToLower(filepath.Ext(*out)) {
		case ".xlsx":
			fmtName = "xlsx"
		default:
			fmtName = "csv"
		}
	}

	cfg := testkit.DefaultGeneratorConfig()
	cfg.Rows = *rows
	cfg.Seed = *seed
	diamonds := testkit.NewDiamondGenerator(cfg).Generate()

	switch fmtName {
	case "csv":
		if err := testkit.WriteCSV(*out, diamonds); err != nil {
			fmt.Fprintln(os.Stderr, "error writing csv:", err)
			os.Exit(1)
		}
	case "xlsx":
		if err := testkit.WriteXLSX(*out, diamonds); err != nil {
			fmt.Fprintln(os.Stderr, "error writing xlsx:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}
	fmt.Printf("Wrote %d diamonds to %s\n", len(diamonds), *out)

	if !*seedDB {
		return
	}

	_ = godotenv.Load()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		fmt.Fprintln(os.Stderr, "-postgres needs DATABASE_URL")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error connecting:", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := postgres.NewDiamondRepository(db, *table)
	if err := repo.CreateTable(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error creating table:", err)
		os.Exit(1)
	}
	if err := repo.Seed(ctx, diamonds); err != nil {
		fmt.Fprintln(os.Stderr, "error seeding table:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d diamonds into %s\n", len(diamonds), *table)
}

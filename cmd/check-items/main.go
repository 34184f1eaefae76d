package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/djglaser/spookymart-ecommerce/config"
	"github.com/djglaser/spookymart-ecommerce/internal/catalog"
	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/pkg/logger"
)

// CLI that validates a set of line items against the product catalog.
// Input is a JSON array of {product_id, quantity, unit_price}; reads
// stdin when no file is given. Exits non-zero when validation fails.
func main() {
	inputPath := flag.String("in", "", "path to a JSON array of line items; empty reads stdin")
	reserve := flag.Bool("reserve", false, "also request a reservation when validation passes")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	var in io.Reader = os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var items []domain.OrderItem
	if err := json.NewDecoder(in).Decode(&items); err != nil {
		fmt.Fprintf(os.Stderr, "decode items: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logg)
	validator := catalog.NewValidator(client, cfg.Catalog.BatchConcurrency, logg)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *reserve {
		reservation := validator.ReserveProducts(ctx, items)
		if err := enc.Encode(reservation); err != nil {
			fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
			os.Exit(1)
		}
		if !reservation.Success {
			os.Exit(1)
		}
		return
	}

	result := validator.ValidateItems(ctx, items)
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	if !result.Valid {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/de-tools/cost-lens/pkg/runtime/terminal"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	awsstore "github.com/de-tools/cost-lens/pkg/store/aws"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load AWS configuration: %v\n", err)
		os.Exit(1)
	}

	prices := pricing.NewStore()
	if path := os.Getenv("COSTLENS_RATES"); path != "" {
		prices = pricing.NewStoreFromFile(ctx, path)
	}

	registry, err := reports.DefaultRegistry(prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	collector := awsstore.NewCollector(cfg)
	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		C:        collector,
		Resolver: collector,
		Output:   os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

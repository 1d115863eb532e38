package main

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/server"
	"github.com/de-tools/cost-lens/pkg/services/aggregator"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	awsstore "github.com/de-tools/cost-lens/pkg/store/aws"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	ratesPath  string
	paramsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Cost Lens web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&ratesPath, "rates", "",
		"Path to a pricing overrides file (optional)")
	rootCmd.Flags().StringVar(&paramsPath, "params", "",
		"Path to a report parameters file (optional)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	prices := pricing.NewStore()
	if ratesPath != "" {
		prices = pricing.NewStoreFromFile(ctx, ratesPath)
	}

	registry, err := reports.DefaultRegistry(prices)
	if err != nil {
		return fmt.Errorf("failed to build report registry: %w", err)
	}

	values, err := params.Load(paramsPath)
	if err != nil {
		return err
	}

	collector := awsstore.NewCollector(cfg)

	account := os.Getenv("COSTLENS_ACCOUNT")
	if account == "" {
		account, err = collector.CallerAccount(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve account: %w", err)
		}
	}

	regions := strings.Split(os.Getenv("COSTLENS_REGIONS"), ",")
	if len(regions) == 1 && regions[0] == "" {
		regions = []string{cfg.Region}
	}
	logger.Info().Str("account", account).Strs("regions", regions).Msg("resolved default scope")

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		DefaultScope:    domain.Scope{Account: account, Regions: regions},
		Dependencies: server.Dependencies{
			Registry:   registry,
			Collector:  collector,
			Aggregator: aggregator.New(registry, collector, aggregator.WithParams(values)),
		},
	})

	return api.Start()
}

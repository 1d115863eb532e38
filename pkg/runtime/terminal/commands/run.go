package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/runtime/terminal/export"
	"github.com/de-tools/cost-lens/pkg/services/aggregator"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/spf13/cobra"
)

// AccountResolver resolves the account behind the active credentials when no
// account flag is given.
type AccountResolver interface {
	CallerAccount(ctx context.Context) (string, error)
}

type RunCmd struct {
	region     string
	account    string
	reportList []string
	paramsPath string
	timeout    time.Duration

	registry reports.Registry
	c        reports.Collector
	resolver AccountResolver
	reporter *export.Reporter
}

func NewRunCmd(
	registry reports.Registry,
	c reports.Collector,
	resolver AccountResolver,
	reporter *export.Reporter,
) *cobra.Command {
	rc := &RunCmd{registry: registry, c: c, resolver: resolver, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run cost reports and print the savings tables",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.region, "region", "", "AWS region to analyze")
	cmd.Flags().StringVar(&rc.account, "account", "", "Account ID (defaults to the caller identity)")
	cmd.Flags().StringSliceVar(&rc.reportList, "reports", nil, "Reports to run (default: all)")
	cmd.Flags().StringVar(&rc.paramsPath, "params", "", "Path to a report parameters file")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", 10*time.Minute, "Overall run timeout")

	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), rc.timeout)
	defer cancel()

	account := rc.account
	if account == "" {
		resolved, err := rc.resolver.CallerAccount(ctx)
		if err != nil {
			return fmt.Errorf("no account given and caller identity lookup failed: %w", err)
		}
		account = resolved
	}

	values, err := params.Load(rc.paramsPath)
	if err != nil {
		return err
	}

	agg := aggregator.New(rc.registry, rc.c, aggregator.WithParams(values))
	results, err := agg.Run(ctx, domain.Scope{Account: account, Regions: []string{rc.region}}, rc.reportList)
	if err != nil {
		return err
	}

	return rc.reporter.Handle(results)
}

package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/cost-lens/pkg/runtime/terminal/commands"
	"github.com/de-tools/cost-lens/pkg/runtime/terminal/export"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry reports.Registry
	c        reports.Collector
	resolver commands.AccountResolver
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry reports.Registry
	C        reports.Collector
	Resolver commands.AccountResolver
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		c:        opts.C,
		resolver: opts.Resolver,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the CLI with the given base context, letting callers
// attach a logger or cancellation.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costlens",
		Short: "AWS cost optimization report engine",
	}

	cmd.AddCommand(commands.NewRunCmd(cli.registry, cli.c, cli.resolver, cli.reporter))
	cmd.AddCommand(commands.NewReportsCmd(cli.registry, cli.c))

	return cmd
}

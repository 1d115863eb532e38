package commands

import (
	"fmt"

	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/spf13/cobra"
)

func NewReportsCmd(registry reports.Registry, c reports.Collector) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the available cost reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range registry.Names() {
				module, err := registry.Create(name, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s [%s] %s\n",
					module.Name(), module.Domain(), module.Description())
			}
			return nil
		},
	}
}

package export

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/cost-lens/pkg/services/aggregator"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Reporter renders aggregator results as terminal tables. Currency columns
// come from each report's presentation metadata and are right-aligned with a
// dollar prefix.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) Handle(results []aggregator.Result) error {
	var total float64
	for _, result := range results {
		r.renderResult(result)
		if result.DisplaySavings {
			total += result.Savings
		}
	}

	fmt.Fprintf(r.writer, "\nTotal estimated monthly savings: $%.2f\n", total)
	return nil
}

func (r *Reporter) renderResult(result aggregator.Result) {
	fmt.Fprintf(r.writer, "\n=== %s ===\n", result.Title)

	currency := make(map[int]bool, len(result.Presentation.CurrencyColumns))
	for _, col := range result.Presentation.CurrencyColumns {
		currency[col] = true
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.writer)
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(result.Table.Columns))
	configs := make([]table.ColumnConfig, 0, len(result.Table.Columns))
	for i, col := range result.Table.Columns {
		header[i] = col
		if currency[i] {
			configs = append(configs, table.ColumnConfig{
				Number: i + 1,
				Align:  text.AlignRight,
			})
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range result.Table.Rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cells[i] = formatCell(cell, currency[i])
		}
		tw.AppendRows([]table.Row{cells})
	}

	if result.DisplaySavings {
		footer := make(table.Row, len(result.Table.Columns))
		if len(footer) >= 2 {
			footer[len(footer)-2] = "Estimated savings"
		}
		footer[len(footer)-1] = text.FgHiGreen.Sprintf("$%.2f", result.Savings)
		tw.AppendFooter(footer)
	}

	tw.Render()
}

func formatCell(cell any, isCurrency bool) any {
	if !isCurrency {
		return cell
	}
	switch v := cell.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", v)
	case float32:
		return fmt.Sprintf("$%.2f", float64(v))
	case int:
		return fmt.Sprintf("$%d", v)
	default:
		return cell
	}
}

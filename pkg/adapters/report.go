package adapters

import (
	"math"

	"github.com/de-tools/cost-lens/pkg/models/api"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/aggregator"
	"github.com/de-tools/cost-lens/pkg/services/reports"
)

func MapChartTypeDomainToApi(c domain.ChartType) api.ChartType {
	switch c {
	case domain.ChartBasic:
		return api.ChartBasic
	case domain.ChartPivot:
		return api.ChartPivot
	case domain.ChartColumn:
		return api.ChartColumn
	default:
		return api.ChartNone
	}
}

func MapCellRangeDomainToApi(r domain.CellRange) api.CellRange {
	return api.CellRange{
		FirstCol: r.FirstCol,
		FirstRow: r.FirstRow,
		LastCol:  r.LastCol,
		LastRow:  r.LastRow,
	}
}

func MapPresentationDomainToApi(p domain.Presentation) api.Presentation {
	res := api.Presentation{
		Chart:           MapChartTypeDomainToApi(p.Chart),
		Categories:      MapCellRangeDomainToApi(p.Categories),
		Values:          MapCellRangeDomainToApi(p.Values),
		CurrencyColumns: make([]int, len(p.CurrencyColumns)),
		GroupBy:         make([]int, len(p.GroupBy)),
	}
	copy(res.CurrencyColumns, p.CurrencyColumns)
	copy(res.GroupBy, p.GroupBy)
	return res
}

func MapModuleToReportDescriptor(m reports.Module) api.ReportDescriptor {
	return api.ReportDescriptor{
		Name:        m.Name(),
		Title:       m.Title(),
		Domain:      m.Domain(),
		Description: m.Description(),
		DocLink:     m.DocLink(),
		Authors:     m.Authors(),
	}
}

func MapResultToApi(r aggregator.Result) api.ReportResult {
	res := api.ReportResult{
		Name:           r.Name,
		Title:          r.Title,
		Savings:        r.Savings,
		DisplaySavings: r.DisplaySavings,
		Presentation:   MapPresentationDomainToApi(r.Presentation),
	}
	if r.Table != nil {
		res.Columns = make([]string, len(r.Table.Columns))
		copy(res.Columns, r.Table.Columns)
		res.Rows = r.Table.Rows
	}
	return res
}

func MapRunToSummary(scope domain.Scope, results []aggregator.Result) api.RunSummary {
	summary := api.RunSummary{
		Account: scope.Account,
		Regions: scope.Regions,
		Reports: make([]api.ReportResult, 0, len(results)),
	}
	var total float64
	for _, r := range results {
		if r.DisplaySavings {
			total += r.Savings
		}
		summary.Reports = append(summary.Reports, MapResultToApi(r))
	}
	summary.TotalSavings = math.Round(total*100) / 100
	return summary
}

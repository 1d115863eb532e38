package reports

import (
	"context"
	"strconv"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/rs/zerolog"
)

var ebsRightsizingColumns = []string{
	"account_id",
	"volume_arn",
	"current_volume_type",
	"current_volume_size",
	"root_volume",
	"finding",
	"number_of_recommendations",
	domain.SavingsColumn,
}

// EBSRightsizing surfaces Compute Optimizer EBS volume findings with the
// rank-1 option's estimated monthly savings.
type EBSRightsizing struct {
	tableHolder
	collector    Collector
	lookbackDays int
}

func NewEBSRightsizing(c Collector) *EBSRightsizing {
	return &EBSRightsizing{collector: c, lookbackDays: 30}
}

func (m *EBSRightsizing) Name() string      { return "ebs_rightsizing" }
func (m *EBSRightsizing) Title() string     { return "EC2 EBS COSTS view" }
func (m *EBSRightsizing) Domain() string    { return "STORAGE" }
func (m *EBSRightsizing) Authors() []string { return []string{"de-tools"} }

func (m *EBSRightsizing) Description() string {
	return "Compute Optimizer EBS volume type and size recommendations."
}

func (m *EBSRightsizing) DocLink() string {
	return "https://docs.aws.amazon.com/compute-optimizer/latest/ug/view-ebs-recommendations.html"
}

func (m *EBSRightsizing) RequiredColumns() []string      { return ebsRightsizingColumns }
func (m *EBSRightsizing) OverrideColumnValidation() bool { return false }
func (m *EBSRightsizing) DisplaySavings() bool           { return false }

func (m *EBSRightsizing) Parameters() []params.Parameter {
	return []params.Parameter{lookbackParameter}
}

func (m *EBSRightsizing) Configure(values params.Values) error {
	resolved, err := params.Resolve(m.Parameters(), values)
	if err != nil {
		return err
	}
	multiplier, _ := strconv.Atoi(resolved[lookbackParameter.Name])
	m.lookbackDays = 30 * multiplier
	return nil
}

func (m *EBSRightsizing) Presentation() domain.Presentation {
	return domain.Presentation{
		Chart:           domain.ChartPivot,
		Categories:      domain.CellRange{FirstCol: 5, FirstRow: 0, LastCol: 5, LastRow: 0},
		Values:          domain.CellRange{FirstCol: 7, FirstRow: 1, LastCol: 7, LastRow: -1},
		CurrencyColumns: []int{7},
		GroupBy:         []int{2},
	}
}

func (m *EBSRightsizing) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", m.Name()).Logger()
	logger.Debug().Int("lookback_days", m.lookbackDays).Msg("collecting recommendations")

	region := scope.Region()
	table := domain.NewTable(ebsRightsizingColumns...)

	recommendations, err := m.collector.VolumeRecommendations(ctx, region)
	if err != nil {
		logger.Warn().Err(err).Msg("recommendation collection failed")
	}

	for _, rec := range recommendations {
		option, found := rankOneOption(rec.Options)
		savings := 0.0
		if found {
			savings = option.MonthlySavings
		}

		_ = table.Append(
			rec.AccountID,
			rec.ARN,
			rec.VolumeType,
			rec.SizeGB,
			yesNo(rec.RootVolume),
			rec.Finding,
			len(rec.Options),
			round2(savings),
		)
	}

	if table.Empty() {
		_ = table.Append(scope.Account, "No volume recommendations found",
			"", 0.0, "", "", 0, 0.0)
	}

	m.setTable(table)
	return table, nil
}

package reports

import (
	"context"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/rs/zerolog"
)

var gravitonColumns = []string{
	"account_id",
	"instance_arn",
	"instance_name",
	"current_instance_type",
	"finding",
	"number_of_recommendations",
	"recommended_instance_type",
	domain.SavingsColumn,
}

// GravitonMigration lists EC2 instances where Compute Optimizer proposes an
// ARM64 (Graviton) target, with the rank-1 option's type and savings.
type GravitonMigration struct {
	tableHolder
	collector Collector
}

func NewGravitonMigration(c Collector) *GravitonMigration {
	return &GravitonMigration{collector: c}
}

func (m *GravitonMigration) Name() string      { return "graviton_migration" }
func (m *GravitonMigration) Title() string     { return "GRAVITON view" }
func (m *GravitonMigration) Domain() string    { return "COMPUTE" }
func (m *GravitonMigration) Authors() []string { return []string{"de-tools"} }

func (m *GravitonMigration) Description() string {
	return "EC2 instances with Graviton migration candidates from Compute Optimizer."
}

func (m *GravitonMigration) DocLink() string {
	return "https://aws.amazon.com/ec2/graviton/"
}

func (m *GravitonMigration) RequiredColumns() []string      { return gravitonColumns }
func (m *GravitonMigration) OverrideColumnValidation() bool { return false }
func (m *GravitonMigration) DisplaySavings() bool           { return false }

func (m *GravitonMigration) Presentation() domain.Presentation {
	return domain.Presentation{
		Chart:           domain.ChartPivot,
		Categories:      domain.CellRange{FirstCol: 4, FirstRow: 0, LastCol: 4, LastRow: 0},
		Values:          domain.CellRange{FirstCol: 7, FirstRow: 1, LastCol: 7, LastRow: -1},
		CurrencyColumns: []int{7},
		GroupBy:         []int{3},
	}
}

func (m *GravitonMigration) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", m.Name()).Logger()
	region := scope.Region()
	table := domain.NewTable(gravitonColumns...)

	recommendations, err := m.collector.InstanceRecommendations(ctx, region, true)
	if err != nil {
		logger.Warn().Err(err).Msg("recommendation collection failed")
	}

	for _, rec := range recommendations {
		option, found := rankOneOption(rec.Options)
		savings := 0.0
		target := ""
		if found {
			savings = option.MonthlySavings
			target = option.TargetType
		}

		_ = table.Append(
			rec.AccountID,
			rec.ARN,
			rec.Name,
			rec.CurrentType,
			rec.Finding,
			len(rec.Options),
			target,
			round2(savings),
		)
	}

	if table.Empty() {
		_ = table.Append(scope.Account, "No Graviton candidates found",
			"", "", "", 0, "", 0.0)
	}

	m.setTable(table)
	return table, nil
}

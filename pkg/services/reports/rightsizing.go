package reports

import (
	"context"
	"strconv"
	"strings"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/rs/zerolog"
)

var instanceRightsizingColumns = []string{
	"account_id",
	"region",
	"instance_name",
	"current_instance_type",
	"finding",
	"recommendation",
	"migration_effort",
	"platform_details",
	domain.SavingsColumn,
}

// lookbackParameter is shared by the Compute Optimizer backed reports: the
// value is a multiplier of the service's 30-day analysis window.
var lookbackParameter = params.Parameter{
	Name:    "lookback_period",
	Default: "1",
	Allowed: []string{"1", "2", "3", "4", "5"},
}

// InstanceRightsizing surfaces Compute Optimizer EC2 rightsizing findings
// with the rank-1 recommendation and its estimated monthly savings.
type InstanceRightsizing struct {
	tableHolder
	collector    Collector
	lookbackDays int
}

func NewInstanceRightsizing(c Collector) *InstanceRightsizing {
	return &InstanceRightsizing{collector: c, lookbackDays: 30}
}

func (m *InstanceRightsizing) Name() string      { return "instance_rightsizing" }
func (m *InstanceRightsizing) Title() string     { return "COMPUTE OPTIMIZER view" }
func (m *InstanceRightsizing) Domain() string    { return "COMPUTE" }
func (m *InstanceRightsizing) Authors() []string { return []string{"de-tools"} }

func (m *InstanceRightsizing) Description() string {
	return "Compute Optimizer EC2 rightsizing recommendations."
}

func (m *InstanceRightsizing) DocLink() string {
	return "https://docs.aws.amazon.com/compute-optimizer/latest/ug/view-ec2-recommendations.html"
}

func (m *InstanceRightsizing) RequiredColumns() []string      { return instanceRightsizingColumns }
func (m *InstanceRightsizing) OverrideColumnValidation() bool { return false }
func (m *InstanceRightsizing) DisplaySavings() bool           { return false }

func (m *InstanceRightsizing) Parameters() []params.Parameter {
	return []params.Parameter{lookbackParameter}
}

func (m *InstanceRightsizing) Configure(values params.Values) error {
	resolved, err := params.Resolve(m.Parameters(), values)
	if err != nil {
		return err
	}
	multiplier, _ := strconv.Atoi(resolved[lookbackParameter.Name])
	m.lookbackDays = 30 * multiplier
	return nil
}

func (m *InstanceRightsizing) Presentation() domain.Presentation {
	return domain.Presentation{
		Chart:           domain.ChartPivot,
		Categories:      domain.CellRange{FirstCol: 4, FirstRow: 0, LastCol: 4, LastRow: 0},
		Values:          domain.CellRange{FirstCol: 8, FirstRow: 1, LastCol: 8, LastRow: -1},
		CurrencyColumns: []int{8},
		GroupBy:         []int{1},
	}
}

func (m *InstanceRightsizing) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", m.Name()).Logger()
	logger.Debug().Int("lookback_days", m.lookbackDays).Msg("collecting recommendations")

	region := scope.Region()
	table := domain.NewTable(instanceRightsizingColumns...)

	recommendations, err := m.collector.InstanceRecommendations(ctx, region, false)
	if err != nil {
		logger.Warn().Err(err).Msg("recommendation collection failed")
	}

	for _, rec := range recommendations {
		option, found := rankOneOption(rec.Options)
		savings := 0.0
		recommendation := ""
		effort := "N/A"
		if found {
			savings = option.MonthlySavings
			recommendation = option.TargetType
			if option.MigrationEffort != "" {
				effort = option.MigrationEffort
			}
		}

		platform := rec.PlatformDetails
		if platform == "" {
			platform = m.platformDetails(ctx, region, rec.ARN)
		}

		_ = table.Append(
			rec.AccountID,
			arnRegion(rec.ARN),
			rec.Name,
			rec.CurrentType,
			rec.Finding,
			recommendation,
			effort,
			platform,
			round2(savings),
		)
	}

	if table.Empty() {
		_ = table.Append(scope.Account, region, "No rightsizing recommendations found",
			"", "", "", "", "", 0.0)
	}

	m.setTable(table)
	return table, nil
}

func (m *InstanceRightsizing) platformDetails(ctx context.Context, region, arn string) string {
	instanceID := arnResource(arn)
	if instanceID == "" {
		return "N/A"
	}
	details, err := m.collector.PlatformDetails(ctx, region, instanceID)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("instance", instanceID).Msg("platform lookup failed")
		return "N/A"
	}
	return details
}

// arnRegion extracts the region field of an ARN
// (arn:partition:service:region:account:resource).
func arnRegion(arn string) string {
	parts := strings.Split(arn, ":")
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}

// arnResource extracts the trailing resource identifier of an ARN.
func arnResource(arn string) string {
	if idx := strings.LastIndexAny(arn, "/:"); idx >= 0 && idx+1 < len(arn) {
		return arn[idx+1:]
	}
	return ""
}

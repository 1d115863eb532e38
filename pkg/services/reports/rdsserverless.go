package reports

import (
	"context"
	"strings"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
	"github.com/rs/zerolog"
)

var rdsServerlessColumns = []string{
	"account_id",
	"db_instance_arn",
	"db_instance_identifier",
	"engine",
	"instance_class",
	"finding",
	"avg_cpu_utilization",
	"max_cpu_utilization",
	"cpu_variability",
	"avg_db_connections",
	"avg_read_iops",
	"avg_write_iops",
	"workload_pattern",
	"serverless_compatible",
	"migration_complexity",
	domain.SavingsColumn,
}

// RDSServerless screens Compute Optimizer RDS findings for Aurora Serverless
// candidates using the point-in-time utilization metrics the optimizer
// reports. For a sampled time-series view of the same question see
// rds_spike_analysis.
type RDSServerless struct {
	tableHolder
	collector Collector
	prices    pricing.Store
}

func NewRDSServerless(c Collector, prices pricing.Store) *RDSServerless {
	return &RDSServerless{collector: c, prices: prices}
}

func (m *RDSServerless) Name() string      { return "rds_serverless" }
func (m *RDSServerless) Title() string     { return "RDS SERVERLESS MIGRATION" }
func (m *RDSServerless) Domain() string    { return "DATABASE" }
func (m *RDSServerless) Authors() []string { return []string{"de-tools"} }

func (m *RDSServerless) Description() string {
	return "RDS instances that are candidates for Aurora Serverless migration."
}

func (m *RDSServerless) DocLink() string {
	return "https://docs.aws.amazon.com/AmazonRDS/latest/AuroraUserGuide/aurora-serverless-v2.html"
}

func (m *RDSServerless) RequiredColumns() []string      { return rdsServerlessColumns }
func (m *RDSServerless) OverrideColumnValidation() bool { return false }
func (m *RDSServerless) DisplaySavings() bool           { return true }

func (m *RDSServerless) Presentation() domain.Presentation {
	return domain.Presentation{
		Chart:           domain.ChartColumn,
		Categories:      domain.CellRange{FirstCol: 12, FirstRow: 0, LastCol: 12, LastRow: 0},
		Values:          domain.CellRange{FirstCol: 15, FirstRow: 1, LastCol: 15, LastRow: -1},
		CurrencyColumns: []int{15},
		GroupBy:         []int{3},
	}
}

func (m *RDSServerless) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", m.Name()).Logger()
	region := scope.Region()
	table := domain.NewTable(rdsServerlessColumns...)

	recommendations, err := m.collector.DBRecommendations(ctx, region)
	if err != nil {
		logger.Warn().Err(err).Msg("recommendation collection failed")
	}

	for _, rec := range recommendations {
		m.screen(table, rec)
	}

	if table.Empty() {
		_ = table.Append(scope.Account, "", "No suitable instances found",
			"", "", "", 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, "", "", "", 0.0)
	}

	m.setTable(table)
	return table, nil
}

func (m *RDSServerless) screen(table *domain.Table, rec domain.DBRecommendation) {
	avgCPU := rec.Metrics["CPU"]
	connections := rec.Metrics["DatabaseConnections"]
	readIOPS := rec.Metrics["ReadIOPS"]
	writeIOPS := rec.Metrics["WriteIOPS"]

	// The optimizer reports a single averaged value per metric; the peak is
	// approximated from the performance risk band.
	maxCPU := avgCPU * 1.2
	if rec.PerformanceRisk == "High" {
		maxCPU = avgCPU * 1.5
	}
	variability := maxCPU - avgCPU

	compatible, complexity := serverlessCompatibility(rec.Engine)
	pattern := screenWorkloadPattern(avgCPU, variability, connections, readIOPS, writeIOPS)

	keep := compatible &&
		(pattern == "Good Candidate" || pattern == "Spiky" ||
			rec.Finding == "UNDER_PROVISIONED" || rec.Finding == "OVER_PROVISIONED")
	if !keep {
		return
	}

	savings := 0.0
	if avgCPU < 70 {
		savings = m.serverlessSavings(rec.InstanceClass, avgCPU)
	}

	_ = table.Append(
		rec.AccountID,
		rec.ARN,
		arnResource(rec.ARN),
		rec.Engine,
		rec.InstanceClass,
		rec.Finding,
		round2(avgCPU),
		round2(maxCPU),
		round2(variability),
		round2(connections),
		round2(readIOPS),
		round2(writeIOPS),
		pattern,
		yesNo(compatible),
		complexity,
		savings,
	)
}

// serverlessCompatibility maps the engine to a migration verdict: Aurora
// engines move directly, MySQL and PostgreSQL have a supported migration
// path, everything else is a re-platform.
func serverlessCompatibility(engine string) (bool, string) {
	switch {
	case strings.HasPrefix(engine, "aurora-"):
		return true, "Low"
	case engine == "mysql" || engine == "postgres":
		return true, "Medium"
	default:
		return false, "High"
	}
}

// screenWorkloadPattern is a coarse first-pass classification over the
// optimizer's point metrics. The CloudWatch-backed analyzer in
// pkg/services/workload refines this with real time series.
func screenWorkloadPattern(avgCPU, variability, connections, readIOPS, writeIOPS float64) string {
	switch {
	case avgCPU < 20 && readIOPS < 100 && writeIOPS < 100 && connections < 10:
		return "Good Candidate"
	case variability > 30:
		return "Spiky"
	case variability > 15:
		return "Variable"
	case avgCPU < 30:
		return "Low"
	default:
		return "Steady"
	}
}

func (m *RDSServerless) serverlessSavings(instanceClass string, avgCPU float64) float64 {
	percentage := 0.05
	switch {
	case avgCPU < 20:
		percentage = 0.40
	case avgCPU < 40:
		percentage = 0.25
	case avgCPU < 60:
		percentage = 0.15
	}
	return round2(m.prices.DBInstanceMonthlyCost(instanceClass) * percentage)
}

package reports

import (
	"context"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
	"github.com/de-tools/cost-lens/pkg/services/workload"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var rdsSpikeColumns = []string{
	"account_id",
	"db_identifier",
	"engine",
	"instance_class",
	"workload_pattern",
	"spike_score",
	"serverless_suitability",
	"avg_cpu",
	"max_cpu",
	"cpu_std_dev",
	"spike_frequency_pct",
	"aurora_compatible",
	domain.SavingsColumn,
}

const (
	spikeMetricDays     = 14
	spikeMetricWorkers  = 4
	spikeMetricsTimeout = 30 * time.Second
)

// RDSSpikeAnalysis scores each RDS instance against sampled CloudWatch time
// series through the workload analyzer. It complements rds_serverless, which
// screens the same fleet on the optimizer's point metrics only.
type RDSSpikeAnalysis struct {
	tableHolder
	collector Collector
	prices    pricing.Store
	analyzer  *workload.Analyzer
}

func NewRDSSpikeAnalysis(c Collector, prices pricing.Store) *RDSSpikeAnalysis {
	return &RDSSpikeAnalysis{collector: c, prices: prices, analyzer: workload.NewAnalyzer()}
}

func (m *RDSSpikeAnalysis) Name() string      { return "rds_spike_analysis" }
func (m *RDSSpikeAnalysis) Title() string     { return "RDS WORKLOAD SPIKE ANALYSIS" }
func (m *RDSSpikeAnalysis) Domain() string    { return "DATABASE" }
func (m *RDSSpikeAnalysis) Authors() []string { return []string{"de-tools"} }

func (m *RDSSpikeAnalysis) Description() string {
	return "CloudWatch-based workload spike analysis for Aurora Serverless suitability."
}

func (m *RDSSpikeAnalysis) DocLink() string {
	return "https://docs.aws.amazon.com/AmazonRDS/latest/UserGuide/monitoring-cloudwatch.html"
}

func (m *RDSSpikeAnalysis) RequiredColumns() []string      { return rdsSpikeColumns }
func (m *RDSSpikeAnalysis) OverrideColumnValidation() bool { return false }
func (m *RDSSpikeAnalysis) DisplaySavings() bool           { return true }

func (m *RDSSpikeAnalysis) Presentation() domain.Presentation {
	return domain.Presentation{
		Chart:           domain.ChartColumn,
		Categories:      domain.CellRange{FirstCol: 2, FirstRow: 0, LastCol: 2, LastRow: 0},
		Values:          domain.CellRange{FirstCol: 12, FirstRow: 1, LastCol: 12, LastRow: -1},
		CurrencyColumns: []int{12},
		GroupBy:         []int{2},
	}
}

func (m *RDSSpikeAnalysis) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", m.Name()).Logger()
	region := scope.Region()
	table := domain.NewTable(rdsSpikeColumns...)

	instances, err := m.collector.ListDBInstances(ctx, region, scope.Account)
	if err != nil {
		logger.Warn().Err(err).Msg("RDS instance collection failed")
	}

	// Metric retrieval fans out per instance; analyses land in a slice
	// indexed by instance so row order stays deterministic.
	analyses := make([]map[string]domain.MetricSeries, len(instances))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(spikeMetricWorkers)

	for i, instance := range instances {
		i, instance := i, instance
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, spikeMetricsTimeout)
			defer cancel()

			metrics, err := m.collector.MetricSeries(callCtx, region, instance.ResourceID, spikeMetricDays)
			if err != nil {
				logger.Warn().Err(err).Str("db_identifier", instance.ResourceID).
					Msg("metric retrieval failed, skipping instance")
				return nil
			}
			analyses[i] = metrics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, instance := range instances {
		if analyses[i] == nil {
			continue
		}
		m.score(table, instance, m.analyzer.Analyze(analyses[i]))
	}

	if table.Empty() {
		_ = table.Append(scope.Account, "No suitable instances found",
			"", "", "", 0.0, "", 0.0, 0.0, 0.0, 0.0, "", 0.0)
	}

	m.setTable(table)
	return table, nil
}

func (m *RDSSpikeAnalysis) score(table *domain.Table, instance domain.ResourceRecord, analysis domain.WorkloadAnalysis) {
	auroraCompatible := instance.Engine == "aurora-mysql" || instance.Engine == "aurora-postgresql"
	migratable := auroraCompatible || instance.Engine == "mysql" || instance.Engine == "postgres"

	if !migratable || analysis.Suitability == domain.SuitabilityPoor {
		return
	}

	_ = table.Append(
		instance.AccountID,
		instance.ResourceID,
		instance.Engine,
		instance.InstanceClass,
		string(analysis.Pattern),
		analysis.SpikeScore,
		string(analysis.Suitability),
		analysis.Avg,
		analysis.Max,
		analysis.StdDev,
		analysis.SpikeFrequencyPct,
		yesNo(auroraCompatible),
		m.serverlessSavings(instance.InstanceClass, analysis),
	)
}

func (m *RDSSpikeAnalysis) serverlessSavings(instanceClass string, analysis domain.WorkloadAnalysis) float64 {
	rate := 0.05
	switch analysis.Suitability {
	case domain.SuitabilityExcellent:
		rate = 0.50
	case domain.SuitabilityGood:
		rate = 0.35
	case domain.SuitabilityFair:
		rate = 0.20
	}
	// A degraded analysis reports Avg 0 for lack of data, not because the
	// instance is idle; only a measured low average earns the bump.
	measured := analysis.Pattern != domain.PatternUnknown &&
		analysis.Pattern != domain.PatternInsufficientData
	if measured && analysis.Avg < 15 {
		rate += 0.10
	}
	return round2(m.prices.DBInstanceMonthlyCost(instanceClass) * rate)
}

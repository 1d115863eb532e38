package reports

import (
	"context"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/classify"
	"github.com/de-tools/cost-lens/pkg/services/lifecycle"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
	"github.com/rs/zerolog"
)

var backupCostColumns = []string{
	"account_id",
	"resource_id",
	"resource_type",
	"criticality_level",
	"current_backup_cost",
	"optimized_backup_cost",
	"retention_policy",
	"backup_frequency",
	"lifecycle_transition",
	"cross_region_needed",
	"security_compliance",
	domain.SavingsColumn,
}

// BackupCost recommends tiered, criticality-driven backup retention for EBS
// volumes and RDS instances, against a uniform daily-snapshots-for-30-days
// baseline. Rows without strictly positive savings are dropped.
type BackupCost struct {
	tableHolder
	collector Collector
	prices    pricing.Store
}

func NewBackupCost(c Collector, prices pricing.Store) *BackupCost {
	return &BackupCost{collector: c, prices: prices}
}

func (m *BackupCost) Name() string      { return "backup_cost" }
func (m *BackupCost) Title() string     { return "AWS BACKUP COST OPTIMIZATION" }
func (m *BackupCost) Domain() string    { return "STORAGE" }
func (m *BackupCost) Authors() []string { return []string{"de-tools"} }

func (m *BackupCost) Description() string {
	return "Cost-optimized backup retention recommendations with security-first lifecycle policies."
}
func (m *BackupCost) DocLink() string {
	return "https://docs.aws.amazon.com/aws-backup/latest/devguide/whatisbackup.html"
}

func (m *BackupCost) RequiredColumns() []string      { return backupCostColumns }
func (m *BackupCost) OverrideColumnValidation() bool { return false }
func (m *BackupCost) DisplaySavings() bool           { return true }

func (m *BackupCost) Presentation() domain.Presentation {
	return domain.Presentation{
		Chart:           domain.ChartColumn,
		Categories:      domain.CellRange{FirstCol: 2, FirstRow: 0, LastCol: 2, LastRow: 0},
		Values:          domain.CellRange{FirstCol: 11, FirstRow: 1, LastCol: 11, LastRow: -1},
		CurrencyColumns: []int{4, 5, 11},
		GroupBy:         []int{2},
	}
}

func (m *BackupCost) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", m.Name()).Logger()
	region := scope.Region()
	table := domain.NewTable(backupCostColumns...)

	volumes, err := m.collector.ListVolumes(ctx, region, scope.Account)
	if err != nil {
		logger.Warn().Err(err).Msg("EBS volume collection failed")
	}
	for _, record := range volumes {
		m.score(ctx, table, record)
	}

	instances, err := m.collector.ListDBInstances(ctx, region, scope.Account)
	if err != nil {
		logger.Warn().Err(err).Msg("RDS instance collection failed")
	}
	for _, record := range instances {
		m.score(ctx, table, record)
	}

	if table.Empty() {
		_ = table.Append(scope.Account, "All backups already optimized",
			"", "", 0.0, 0.0, "", "", "", "", "", 0.0)
	}

	m.setTable(table)
	return table, nil
}

func (m *BackupCost) score(ctx context.Context, table *domain.Table, record domain.ResourceRecord) {
	criticality := classify.Criticality(record.Tags)
	estimate := lifecycle.EstimateBackupCost(record.SizeGB, criticality,
		m.prices.UnitPrices(ctx, record.Type))

	savings := estimate.Savings()
	if savings <= 0 {
		return
	}

	crossRegion := criticality == domain.CriticalityCritical
	_ = table.Append(
		record.AccountID,
		record.ResourceID,
		string(record.Type),
		string(criticality),
		round2(estimate.CurrentCost),
		round2(estimate.OptimizedCost),
		estimate.RetentionPolicy,
		estimate.Frequency,
		estimate.LifecycleTransition,
		yesNo(crossRegion),
		complianceLevel(criticality),
		round2(savings),
	)
}

func complianceLevel(criticality domain.CriticalityLevel) string {
	switch criticality {
	case domain.CriticalityCritical:
		return "SOC2/PCI-DSS Ready"
	case domain.CriticalityImportant:
		return "Standard Compliance"
	default:
		return "Basic Protection"
	}
}

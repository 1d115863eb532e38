package reports

import (
	"context"
	"strings"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
	"github.com/rs/zerolog"
)

var snapshotAuditColumns = []string{
	"account_id",
	"snapshot_id",
	"snapshot_type",
	"resource_id",
	"creation_date",
	"size_gb",
	"age_days",
	"created_by",
	"description",
	domain.SavingsColumn,
}

// SnapshotAudit finds EBS and RDS snapshots created outside AWS Backup. The
// savings figure is the monthly storage cost reclaimable by consolidating
// them under managed backup policies.
type SnapshotAudit struct {
	tableHolder
	collector Collector
	prices    pricing.Store
}

func NewSnapshotAudit(c Collector, prices pricing.Store) *SnapshotAudit {
	return &SnapshotAudit{collector: c, prices: prices}
}

func (m *SnapshotAudit) Name() string      { return "snapshot_audit" }
func (m *SnapshotAudit) Title() string     { return "MANUAL SNAPSHOTS ANALYSIS" }
func (m *SnapshotAudit) Domain() string    { return "STORAGE" }
func (m *SnapshotAudit) Authors() []string { return []string{"de-tools"} }

func (m *SnapshotAudit) Description() string {
	return "EBS and RDS snapshots created outside of the AWS Backup service."
}

func (m *SnapshotAudit) DocLink() string {
	return "https://docs.aws.amazon.com/aws-backup/latest/devguide/whatisbackup.html"
}

func (m *SnapshotAudit) RequiredColumns() []string      { return snapshotAuditColumns }
func (m *SnapshotAudit) OverrideColumnValidation() bool { return false }
func (m *SnapshotAudit) DisplaySavings() bool           { return true }

func (m *SnapshotAudit) Presentation() domain.Presentation {
	return domain.Presentation{
		Chart:           domain.ChartColumn,
		Categories:      domain.CellRange{FirstCol: 2, FirstRow: 0, LastCol: 2, LastRow: 0},
		Values:          domain.CellRange{FirstCol: 9, FirstRow: 1, LastCol: 9, LastRow: -1},
		CurrencyColumns: []int{9},
		GroupBy:         []int{2},
	}
}

func (m *SnapshotAudit) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", m.Name()).Logger()
	region := scope.Region()
	table := domain.NewTable(snapshotAuditColumns...)

	ebs, err := m.collector.ListEBSSnapshots(ctx, region, scope.Account)
	if err != nil {
		logger.Warn().Err(err).Msg("EBS snapshot collection failed")
	}
	for _, snapshot := range ebs {
		m.audit(ctx, table, snapshot)
	}

	rds, err := m.collector.ListDBSnapshots(ctx, region, scope.Account)
	if err != nil {
		logger.Warn().Err(err).Msg("RDS snapshot collection failed")
	}
	for _, snapshot := range rds {
		m.audit(ctx, table, snapshot)
	}

	if table.Empty() {
		_ = table.Append(scope.Account, "No manual snapshots found",
			"", "", "", 0.0, 0, "", "", 0.0)
	}

	m.setTable(table)
	return table, nil
}

func (m *SnapshotAudit) audit(ctx context.Context, table *domain.Table, snapshot domain.ResourceRecord) {
	if isAWSBackupManaged(snapshot.Tags) {
		return
	}

	ageDays := int(time.Since(snapshot.CreatedAt).Hours() / 24)
	monthlyCost := snapshot.SizeGB * m.prices.UnitPrices(ctx, snapshot.Type).Standard

	_ = table.Append(
		snapshot.AccountID,
		snapshot.ResourceID,
		string(snapshot.Type),
		snapshot.SourceResourceID,
		snapshot.CreatedAt.Format("2006-01-02"),
		snapshot.SizeGB,
		ageDays,
		createdBy(snapshot.Tags),
		snapshot.Description,
		round2(monthlyCost),
	)
}

// isAWSBackupManaged detects snapshots created by the AWS Backup service:
// either the service's own source-resource tag or a CreatedBy tag naming a
// backup tool.
func isAWSBackupManaged(tags map[string]string) bool {
	if _, ok := tags["aws:backup:source-resource"]; ok {
		return true
	}
	if creator, ok := tags["CreatedBy"]; ok && strings.Contains(strings.ToLower(creator), "backup") {
		return true
	}
	return false
}

func createdBy(tags map[string]string) string {
	if creator, ok := tags["CreatedBy"]; ok {
		return creator
	}
	return "Manual/Unknown"
}

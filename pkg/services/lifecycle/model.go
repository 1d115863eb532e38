package lifecycle

import (
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
)

// Retention policies per criticality tier. Counts are snapshot points kept in
// each storage tier: hot points stay on standard storage, warm points on
// infrequent access, cold points on archive.
const (
	hotDays          = 7
	criticalPerDay   = 4
	criticalWarm     = 23 // daily points transitioned to IA
	criticalCold     = 52 // weekly points kept for a year
	importantWarm    = 12 // weekly points kept for a quarter
	currentSnapshots = 30 // daily-snapshot-for-30-days baseline
)

// EstimateBackupCost computes the current (uniform daily snapshots for 30
// days) versus the tiered, criticality-driven backup cost for one resource.
func EstimateBackupCost(
	sizeGB float64,
	criticality domain.CriticalityLevel,
	prices pricing.UnitPrices,
) domain.CostEstimate {
	estimate := domain.CostEstimate{
		CurrentCost: sizeGB * prices.Standard * currentSnapshots,
	}

	switch criticality {
	case domain.CriticalityCritical:
		estimate.OptimizedCost = sizeGB*prices.Standard*hotDays*criticalPerDay +
			sizeGB*prices.InfrequentAccess*criticalWarm +
			sizeGB*prices.Archive*criticalCold
		estimate.RetentionPolicy = "7d hot, 30d warm, 365d cold"
		estimate.Frequency = "4x daily"
		estimate.LifecycleTransition = "Standard→IA(30d)→Glacier(90d)"
	case domain.CriticalityImportant:
		estimate.OptimizedCost = sizeGB*prices.Standard*hotDays +
			sizeGB*prices.InfrequentAccess*importantWarm
		estimate.RetentionPolicy = "7d hot, 90d warm"
		estimate.Frequency = "Daily"
		estimate.LifecycleTransition = "Standard→IA(7d)→Glacier(30d)"
	default:
		estimate.OptimizedCost = sizeGB * prices.Standard * hotDays
		estimate.RetentionPolicy = "7d hot only"
		estimate.Frequency = "Daily"
		estimate.LifecycleTransition = "Standard→IA(7d)"
	}

	return estimate
}

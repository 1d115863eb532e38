package reports

import (
	"github.com/de-tools/cost-lens/pkg/services/pricing"
)

// DefaultRegistry registers the built-in reports in their canonical order.
func DefaultRegistry(prices pricing.Store) (Registry, error) {
	r := NewRegistry()

	factories := []struct {
		name    string
		factory Factory
	}{
		{"backup_cost", func(c Collector) Module { return NewBackupCost(c, prices) }},
		{"snapshot_audit", func(c Collector) Module { return NewSnapshotAudit(c, prices) }},
		{"instance_rightsizing", func(c Collector) Module { return NewInstanceRightsizing(c) }},
		{"ebs_rightsizing", func(c Collector) Module { return NewEBSRightsizing(c) }},
		{"graviton_migration", func(c Collector) Module { return NewGravitonMigration(c) }},
		{"rds_serverless", func(c Collector) Module { return NewRDSServerless(c, prices) }},
		{"rds_spike_analysis", func(c Collector) Module { return NewRDSSpikeAnalysis(c, prices) }},
	}

	for _, f := range factories {
		if err := r.Register(f.name, f.factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

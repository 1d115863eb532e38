package domain

// RecommendationOption is one ranked alternative offered by the optimizer
// service for a resource. Rank 1 is the preferred option.
type RecommendationOption struct {
	Rank            int
	TargetType      string
	MonthlySavings  float64
	MigrationEffort string
}

// InstanceRecommendation is a normalized Compute Optimizer EC2 finding.
type InstanceRecommendation struct {
	AccountID       string
	ARN             string
	Name            string
	CurrentType     string
	Finding         string
	PlatformDetails string
	Options         []RecommendationOption
}

// VolumeRecommendation is a normalized Compute Optimizer EBS finding.
type VolumeRecommendation struct {
	AccountID  string
	ARN        string
	VolumeType string
	SizeGB     float64
	RootVolume bool
	Finding    string
	Options    []RecommendationOption
}

// DBRecommendation is a normalized Compute Optimizer RDS finding, including
// the point-in-time utilization metrics the service reports per instance.
type DBRecommendation struct {
	AccountID       string
	ARN             string
	Engine          string
	InstanceClass   string
	Finding         string
	PerformanceRisk string
	// Metrics keyed by optimizer metric name: CPU, Memory,
	// DatabaseConnections, ReadIOPS, WriteIOPS.
	Metrics map[string]float64
}

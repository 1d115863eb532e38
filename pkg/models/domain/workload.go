package domain

// MetricSeries holds per-interval statistics for one named metric, e.g. the
// hourly Average/Maximum/Minimum datapoints of CPUUtilization.
type MetricSeries struct {
	Avg []float64
	Max []float64
	Min []float64
}

type WorkloadPattern string

const (
	PatternHighlySpiky      WorkloadPattern = "Highly Spiky"
	PatternModeratelySpiky  WorkloadPattern = "Moderately Spiky"
	PatternLowUtilization   WorkloadPattern = "Low Utilization"
	PatternVariable         WorkloadPattern = "Variable"
	PatternSteady           WorkloadPattern = "Steady"
	PatternUnknown          WorkloadPattern = "Unknown"
	PatternInsufficientData WorkloadPattern = "Insufficient Data"
)

type Suitability string

const (
	SuitabilityExcellent Suitability = "Excellent"
	SuitabilityGood      Suitability = "Good"
	SuitabilityFair      Suitability = "Fair"
	SuitabilityPoor      Suitability = "Poor"
	SuitabilityLow       Suitability = "Low"
	SuitabilityUnknown   Suitability = "Unknown"
)

// WorkloadAnalysis summarizes how bursty a workload is and whether it would
// benefit from an elastic/serverless migration. StdDev is the sample standard
// deviation of the primary average series.
type WorkloadAnalysis struct {
	Pattern                WorkloadPattern
	SpikeScore             float64
	Suitability            Suitability
	Avg                    float64
	Max                    float64
	StdDev                 float64
	VariabilityCoefficient float64
	SpikeFrequencyPct      float64
}

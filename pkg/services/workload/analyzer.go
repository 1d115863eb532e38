package workload

import (
	"math"

	"github.com/de-tools/cost-lens/pkg/models/domain"
)

// Metric names recognized by the analyzer. The primary series drives the
// decision table; secondary activity series and the memory series only
// contribute to the spike score.
const (
	MetricCPU         = "CPUUtilization"
	MetricConnections = "DatabaseConnections"
	MetricReadIOPS    = "ReadIOPS"
	MetricWriteIOPS   = "WriteIOPS"
	MetricFreeMemory  = "FreeableMemory"
)

// minSamples is the minimum number of primary average datapoints required
// before the analyzer produces a verdict.
const minSamples = 10

// Analyzer computes a spike score and serverless suitability verdict from
// named metric time series.
type Analyzer struct {
	// LowUtilizationThreshold is the primary-series average below which a
	// non-spiky workload is classified as Low Utilization.
	LowUtilizationThreshold float64
	// LowConnections and LowIOPS bound "secondary activity is also low",
	// which upgrades Low Utilization from Good to Excellent.
	LowConnections float64
	LowIOPS        float64
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		LowUtilizationThreshold: 20,
		LowConnections:          10,
		LowIOPS:                 100,
	}
}

// Analyze scores the workload described by the given series. Missing primary
// data yields Unknown/Low; fewer than minSamples primary datapoints yields
// InsufficientData/Unknown with a zero score regardless of values.
//
// The decision table is evaluated strictly in priority order because the
// score bands overlap; reordering it changes verdicts.
func (a *Analyzer) Analyze(metrics map[string]domain.MetricSeries) domain.WorkloadAnalysis {
	primary, ok := metrics[MetricCPU]
	if !ok {
		return domain.WorkloadAnalysis{
			Pattern:     domain.PatternUnknown,
			Suitability: domain.SuitabilityLow,
		}
	}
	if len(primary.Avg) < minSamples {
		return domain.WorkloadAnalysis{
			Pattern:     domain.PatternInsufficientData,
			Suitability: domain.SuitabilityUnknown,
		}
	}

	avg := mean(primary.Avg)
	maxVal := maxOf(primary.Max)
	stdDev := sampleStdDev(primary.Avg)
	vc := 0.0
	if avg > 0 {
		vc = stdDev / avg
	}
	spikeFreq := spikeFrequency(primary.Max, avg)

	score := vc*30 + spikeFreq*40 + math.Max(0, (maxVal-avg)/10)
	score += a.secondaryContribution(metrics)
	score = clamp(score, 0, 100)

	analysis := domain.WorkloadAnalysis{
		SpikeScore:             round2(score),
		Avg:                    round2(avg),
		Max:                    round2(maxVal),
		StdDev:                 round2(stdDev),
		VariabilityCoefficient: round2(vc),
		SpikeFrequencyPct:      round2(spikeFreq * 100),
	}

	switch {
	case score > 60:
		analysis.Pattern = domain.PatternHighlySpiky
		analysis.Suitability = domain.SuitabilityExcellent
	case score > 40:
		analysis.Pattern = domain.PatternModeratelySpiky
		analysis.Suitability = domain.SuitabilityGood
	case avg < a.LowUtilizationThreshold:
		analysis.Pattern = domain.PatternLowUtilization
		if a.secondaryActivityLow(metrics) {
			analysis.Suitability = domain.SuitabilityExcellent
		} else {
			analysis.Suitability = domain.SuitabilityGood
		}
	case vc > 0.5:
		analysis.Pattern = domain.PatternVariable
		analysis.Suitability = domain.SuitabilityFair
	default:
		analysis.Pattern = domain.PatternSteady
		analysis.Suitability = domain.SuitabilityPoor
	}

	return analysis
}

// secondaryContribution adds the weighted burstiness of the activity series
// and a memory pressure term of up to 10 points.
func (a *Analyzer) secondaryContribution(metrics map[string]domain.MetricSeries) float64 {
	var extra float64
	for _, name := range []string{MetricConnections, MetricReadIOPS, MetricWriteIOPS} {
		series, ok := metrics[name]
		if !ok || len(series.Avg) == 0 {
			continue
		}
		avg := mean(series.Avg)
		vc := 0.0
		if avg > 0 {
			vc = sampleStdDev(series.Avg) / avg
		}
		extra += vc*5 + spikeFrequency(series.Max, avg)*10
	}

	if mem, ok := metrics[MetricFreeMemory]; ok && len(mem.Avg) > 0 && len(mem.Min) > 0 {
		avgFree := mean(mem.Avg)
		minFree := minOf(mem.Min)
		if avgFree > 0 && minFree < avgFree {
			extra += (avgFree - minFree) / avgFree * 10
		}
	}
	return extra
}

// secondaryActivityLow reports whether activity series are present and all
// of them sit below their thresholds. Absent series never upgrade a verdict.
func (a *Analyzer) secondaryActivityLow(metrics map[string]domain.MetricSeries) bool {
	present := false
	if conns, ok := metrics[MetricConnections]; ok && len(conns.Avg) > 0 {
		present = true
		if mean(conns.Avg) >= a.LowConnections {
			return false
		}
	}
	for _, name := range []string{MetricReadIOPS, MetricWriteIOPS} {
		if series, ok := metrics[name]; ok && len(series.Avg) > 0 {
			present = true
			if mean(series.Avg) >= a.LowIOPS {
				return false
			}
		}
	}
	return present
}

// spikeFrequency is the fraction of max-value samples exceeding twice the
// series average.
func spikeFrequency(maxValues []float64, avg float64) float64 {
	if len(maxValues) == 0 {
		return 0
	}
	threshold := avg * 2
	count := 0
	for _, v := range maxValues {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(maxValues))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the sample (n-1) standard deviation.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

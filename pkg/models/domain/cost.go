package domain

// CostEstimate is the outcome of the lifecycle cost model for a single
// resource. Savings may be negative here; report modules drop rows whose
// savings are not strictly positive before they reach a table.
type CostEstimate struct {
	CurrentCost         float64
	OptimizedCost       float64
	RetentionPolicy     string
	Frequency           string
	LifecycleTransition string
}

func (e CostEstimate) Savings() float64 {
	return e.CurrentCost - e.OptimizedCost
}

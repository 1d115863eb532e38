package domain

// CriticalityLevel is the tag-derived importance tier of a resource. It
// drives the retention policy picked by the lifecycle cost model.
type CriticalityLevel string

const (
	CriticalityCritical  CriticalityLevel = "Critical"
	CriticalityImportant CriticalityLevel = "Important"
	CriticalityStandard  CriticalityLevel = "Standard"
)

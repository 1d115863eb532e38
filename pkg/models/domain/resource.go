package domain

import "time"

type ResourceType string

const (
	ResourceTypeVolume      ResourceType = "EBS Volume"
	ResourceTypeDBInstance  ResourceType = "RDS Instance"
	ResourceTypeEBSSnapshot ResourceType = "EBS"
	ResourceTypeDBSnapshot  ResourceType = "RDS"
)

// ResourceRecord is a normalized, read-only snapshot of one cloud resource
// at collection time. Collectors create it; the engine never mutates it.
type ResourceRecord struct {
	AccountID  string
	ResourceID string
	Type       ResourceType
	SizeGB     float64
	State      string
	Tags       map[string]string

	// Populated for snapshots.
	SourceResourceID string
	CreatedAt        time.Time
	Description      string

	// Populated for database instances.
	ARN           string
	Engine        string
	InstanceClass string
}

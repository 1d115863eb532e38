package classify

import (
	"strings"

	"github.com/de-tools/cost-lens/pkg/models/domain"
)

// criticalityKeys are checked in this fixed priority order. Go maps have no
// stable iteration order, so first-match-wins has to be anchored to the key,
// not the map.
var criticalityKeys = []string{"criticality", "tier", "environment"}

// Criticality derives the importance tier of a resource from its tags.
// It is total: any tag shape that fails to match simply falls through to
// Standard, and an empty or nil mapping is Standard.
func Criticality(tags map[string]string) domain.CriticalityLevel {
	lowered := make(map[string]string, len(tags))
	for k, v := range tags {
		lowered[strings.ToLower(k)] = strings.ToLower(v)
	}

	for _, key := range criticalityKeys {
		value, ok := lowered[key]
		if !ok {
			continue
		}
		switch value {
		case "critical", "production", "prod":
			return domain.CriticalityCritical
		case "important", "staging", "test":
			return domain.CriticalityImportant
		}
	}
	return domain.CriticalityStandard
}

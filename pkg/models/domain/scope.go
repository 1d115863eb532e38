package domain

// Scope identifies the account and region context of one report run.
type Scope struct {
	Account string
	Regions []string
}

// Region returns the first configured region. Single-region operations use
// only the first element of a region list; this is a documented
// simplification, not a multi-region fan-out.
func (s Scope) Region() string {
	if len(s.Regions) == 0 {
		return ""
	}
	return s.Regions[0]
}

package params

import (
	"fmt"

	"github.com/spf13/viper"
)

// Parameter describes one tunable input a report module accepts, together
// with the values it allows.
type Parameter struct {
	Name    string
	Default string
	Allowed []string
}

// Values maps parameter name to the resolved value for one run.
type Values map[string]string

// ValidationError is a hard configuration error: it is surfaced before any
// collection begins and aborts the run.
type ValidationError struct {
	Parameter string
	Value     string
	Allowed   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q: value %q not in allowed set %v",
		e.Parameter, e.Value, e.Allowed)
}

// Resolve merges file-provided values over parameter defaults and validates
// them against the allowed sets. Unknown names in the source are ignored;
// out-of-range values are a ValidationError.
func Resolve(declared []Parameter, source Values) (Values, error) {
	resolved := make(Values, len(declared))
	for _, p := range declared {
		value := p.Default
		if v, ok := source[p.Name]; ok {
			value = v
		}
		if len(p.Allowed) > 0 && !contains(p.Allowed, value) {
			return nil, &ValidationError{Parameter: p.Name, Value: value, Allowed: p.Allowed}
		}
		resolved[p.Name] = value
	}
	return resolved, nil
}

// Load reads per-module parameter values from a config file laid out as
// module name -> parameter name -> value. A missing path yields an empty set.
func Load(path string) (map[string]Values, error) {
	if path == "" {
		return map[string]Values{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	var raw map[string]map[string]string
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse params file: %w", err)
	}

	out := make(map[string]Values, len(raw))
	for module, values := range raw {
		out[module] = Values(values)
	}
	return out, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

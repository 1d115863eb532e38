package aggregator

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModule struct {
	name      string
	columns   []string
	rows      [][]any
	configErr error
	runErr    error

	table      *domain.Table
	configured params.Values
}

func (m *stubModule) Name() string                   { return m.name }
func (m *stubModule) Title() string                  { return m.name + " title" }
func (m *stubModule) Domain() string                 { return "TEST" }
func (m *stubModule) Description() string            { return "" }
func (m *stubModule) DocLink() string                { return "" }
func (m *stubModule) Authors() []string              { return []string{"de-tools"} }
func (m *stubModule) RequiredColumns() []string      { return m.columns }
func (m *stubModule) OverrideColumnValidation() bool { return false }
func (m *stubModule) DisplaySavings() bool           { return true }

func (m *stubModule) CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error) {
	if m.runErr != nil {
		return nil, m.runErr
	}
	table := domain.NewTable(m.columns...)
	for _, row := range m.rows {
		if err := table.Append(row...); err != nil {
			return nil, err
		}
	}
	m.table = table
	return table, nil
}

func (m *stubModule) EstimatedSavings(sum bool) float64 {
	if !sum || m.table.Empty() {
		return 0.0
	}
	return m.table.SavingsSum()
}

func (m *stubModule) Presentation() domain.Presentation { return domain.Presentation{} }

func (m *stubModule) Parameters() []params.Parameter {
	return []params.Parameter{{Name: "mode", Default: "fast", Allowed: []string{"fast", "full"}}}
}

func (m *stubModule) Configure(values params.Values) error {
	m.configured = values
	return m.configErr
}

func newStubRegistry(t *testing.T, modules ...*stubModule) reports.Registry {
	t.Helper()
	r := reports.NewRegistry()
	for _, m := range modules {
		m := m
		require.NoError(t, r.Register(m.name, func(reports.Collector) reports.Module { return m }))
	}
	return r
}

func TestAggregator_RunPreservesRegistrationOrder(t *testing.T) {
	cols := []string{"account_id", domain.SavingsColumn}
	first := &stubModule{name: "first", columns: cols, rows: [][]any{{"a", 10.0}}}
	second := &stubModule{name: "second", columns: cols, rows: [][]any{{"a", 2.5}, {"a", 2.5}}}
	third := &stubModule{name: "third", columns: cols}

	agg := New(newStubRegistry(t, first, second, third), nil, WithConcurrency(2))
	results, err := agg.Run(context.Background(), domain.Scope{Account: "a"}, nil)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, "third", results[2].Name)
	assert.Equal(t, 10.0, results[0].Savings)
	assert.Equal(t, 5.0, results[1].Savings)
	assert.Equal(t, 0.0, results[2].Savings)
	assert.True(t, results[0].DisplaySavings)
}

func TestAggregator_SelectionAndUnknownReport(t *testing.T) {
	cols := []string{"account_id", domain.SavingsColumn}
	first := &stubModule{name: "first", columns: cols}
	second := &stubModule{name: "second", columns: cols}

	agg := New(newStubRegistry(t, first, second), nil)

	results, err := agg.Run(context.Background(), domain.Scope{}, []string{"second"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "second", results[0].Name)

	_, err = agg.Run(context.Background(), domain.Scope{}, []string{"missing"})
	assert.ErrorContains(t, err, `unknown report "missing"`)
}

func TestAggregator_ConfigurationErrorAbortsBeforeCollection(t *testing.T) {
	cols := []string{"account_id", domain.SavingsColumn}
	broken := &stubModule{
		name:      "broken",
		columns:   cols,
		configErr: &params.ValidationError{Parameter: "mode", Value: "bad"},
	}

	agg := New(newStubRegistry(t, broken), nil,
		WithParams(map[string]params.Values{"broken": {"mode": "bad"}}))

	_, err := agg.Run(context.Background(), domain.Scope{}, nil)
	var validation *params.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, params.Values{"mode": "bad"}, broken.configured)
}

func TestAggregator_ModuleErrorPropagates(t *testing.T) {
	cols := []string{"account_id", domain.SavingsColumn}
	ok := &stubModule{name: "ok", columns: cols}
	failing := &stubModule{name: "failing", columns: cols, runErr: errors.New("boom")}

	agg := New(newStubRegistry(t, ok, failing), nil)
	_, err := agg.Run(context.Background(), domain.Scope{}, nil)
	assert.ErrorContains(t, err, `report "failing" failed`)
}

package reports

import (
	"context"
	"fmt"
	"math"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/params"
)

// Collector supplies normalized provider records to report modules. The AWS
// implementation lives in pkg/store/aws; tests substitute mocks.
type Collector interface {
	ListVolumes(ctx context.Context, region, account string) ([]domain.ResourceRecord, error)
	ListDBInstances(ctx context.Context, region, account string) ([]domain.ResourceRecord, error)
	ListEBSSnapshots(ctx context.Context, region, account string) ([]domain.ResourceRecord, error)
	ListDBSnapshots(ctx context.Context, region, account string) ([]domain.ResourceRecord, error)
	InstanceRecommendations(ctx context.Context, region string, arm64Only bool) ([]domain.InstanceRecommendation, error)
	VolumeRecommendations(ctx context.Context, region string) ([]domain.VolumeRecommendation, error)
	DBRecommendations(ctx context.Context, region string) ([]domain.DBRecommendation, error)
	MetricSeries(ctx context.Context, region, dbID string, days int) (map[string]domain.MetricSeries, error)
	PlatformDetails(ctx context.Context, region, instanceID string) (string, error)
}

// Module is the contract every report implements. Identity accessors are
// pure data; CollectAndScore is the only side-effecting operation.
//
// Collection failures (unreachable or denied provider APIs) are handled
// inside CollectAndScore: they are logged and degrade to the module's
// placeholder row so one failing module never aborts its siblings. A
// returned error signals an engine-level defect or cancellation and does
// propagate.
type Module interface {
	Name() string
	Title() string
	Domain() string
	Description() string
	DocLink() string
	Authors() []string

	RequiredColumns() []string
	OverrideColumnValidation() bool
	DisplaySavings() bool

	CollectAndScore(ctx context.Context, scope domain.Scope) (*domain.Table, error)
	EstimatedSavings(sum bool) float64
	Presentation() domain.Presentation
}

// Configurable is implemented by modules with tunable parameters. Configure
// runs before any collection; a params.ValidationError aborts the run.
type Configurable interface {
	Parameters() []params.Parameter
	Configure(values params.Values) error
}

// SchemaMismatchError reports a table whose columns do not match the
// module's declared schema. This is a programming defect and fails loudly.
type SchemaMismatchError struct {
	Module string
	Want   []string
	Got    []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("report %q produced columns %v, declared %v", e.Module, e.Got, e.Want)
}

// ValidateColumns checks a collected table against the module schema unless
// the module opts out of validation.
func ValidateColumns(m Module, t *domain.Table) error {
	if m.OverrideColumnValidation() {
		return nil
	}
	want := m.RequiredColumns()
	if len(want) != len(t.Columns) {
		return &SchemaMismatchError{Module: m.Name(), Want: want, Got: t.Columns}
	}
	for i, col := range want {
		if t.Columns[i] != col {
			return &SchemaMismatchError{Module: m.Name(), Want: want, Got: t.Columns}
		}
	}
	return nil
}

// tableHolder carries the last collected table so EstimatedSavings can be
// answered after a run. CollectAndScore replaces the table wholesale, which
// keeps repeated runs idempotent.
type tableHolder struct {
	table *domain.Table
}

func (h *tableHolder) setTable(t *domain.Table) {
	h.table = t
}

func (h *tableHolder) EstimatedSavings(sum bool) float64 {
	if !sum || h.table.Empty() {
		return 0.0
	}
	return h.table.SavingsSum()
}

// rankOneOption selects the option ranked first among recommendation
// alternatives. A single option counts regardless of its rank; otherwise a
// missing rank-1 yields no option and callers treat it as zero savings.
func rankOneOption(options []domain.RecommendationOption) (domain.RecommendationOption, bool) {
	if len(options) == 0 {
		return domain.RecommendationOption{}, false
	}
	if len(options) == 1 {
		return options[0], true
	}
	for _, option := range options {
		if option.Rank == 1 {
			return option, true
		}
	}
	return domain.RecommendationOption{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

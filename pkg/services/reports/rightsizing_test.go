package reports

import (
	"context"
	"testing"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInstanceRightsizing_RankOneSelection(t *testing.T) {
	ctx := context.Background()
	collector := new(mockCollector)

	collector.On("InstanceRecommendations", mock.Anything, "eu-west-1", false).Return([]domain.InstanceRecommendation{
		{
			AccountID:       "123456789012",
			ARN:             "arn:aws:ec2:eu-west-1:123456789012:instance/i-aaa",
			Name:            "api-server",
			CurrentType:     "m5.2xlarge",
			Finding:         "OVER_PROVISIONED",
			PlatformDetails: "Linux/UNIX",
			Options: []domain.RecommendationOption{
				{Rank: 2, TargetType: "m5.large", MonthlySavings: 90.0},
				{Rank: 1, TargetType: "m5.xlarge", MonthlySavings: 62.416, MigrationEffort: "Low"},
			},
		},
		{
			AccountID:       "123456789012",
			ARN:             "arn:aws:ec2:eu-west-1:123456789012:instance/i-bbb",
			Name:            "batch-worker",
			CurrentType:     "c5.large",
			Finding:         "OPTIMIZED",
			PlatformDetails: "Linux/UNIX",
			Options:         nil,
		},
	}, nil)

	report := NewInstanceRightsizing(collector)
	table, err := report.CollectAndScore(ctx, testScope())
	require.NoError(t, err)
	require.NoError(t, ValidateColumns(report, table))

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "m5.xlarge", table.Rows[0][5])
	assert.Equal(t, "Low", table.Rows[0][6])
	assert.Equal(t, "eu-west-1", table.Rows[0][1])
	assert.Equal(t, 62.42, table.Rows[0][8])

	// No options means no recommendation and zero savings, not a dropped row.
	assert.Equal(t, "", table.Rows[1][5])
	assert.Equal(t, "N/A", table.Rows[1][6])
	assert.Equal(t, 0.0, table.Rows[1][8])
}

func TestInstanceRightsizing_PlatformLookupFallback(t *testing.T) {
	ctx := context.Background()
	collector := new(mockCollector)

	collector.On("InstanceRecommendations", mock.Anything, "eu-west-1", false).Return([]domain.InstanceRecommendation{
		{
			AccountID:   "123456789012",
			ARN:         "arn:aws:ec2:eu-west-1:123456789012:instance/i-ccc",
			Name:        "db-proxy",
			CurrentType: "t3.medium",
			Finding:     "UNDER_PROVISIONED",
			Options: []domain.RecommendationOption{
				{Rank: 1, TargetType: "t3.large", MonthlySavings: -12.5, MigrationEffort: "Low"},
			},
		},
	}, nil)
	collector.On("PlatformDetails", mock.Anything, "eu-west-1", "i-ccc").
		Return("Windows", nil)

	report := NewInstanceRightsizing(collector)
	table, err := report.CollectAndScore(ctx, testScope())
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Windows", table.Rows[0][7])
	collector.AssertCalled(t, "PlatformDetails", mock.Anything, "eu-west-1", "i-ccc")
}

func TestInstanceRightsizing_PlaceholderOnEmpty(t *testing.T) {
	ctx := context.Background()
	collector := new(mockCollector)

	collector.On("InstanceRecommendations", mock.Anything, "eu-west-1", false).
		Return([]domain.InstanceRecommendation{}, nil)

	report := NewInstanceRightsizing(collector)
	table, err := report.CollectAndScore(ctx, testScope())
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "No rightsizing recommendations found", table.Rows[0][2])
	assert.False(t, report.DisplaySavings())
}

func TestInstanceRightsizing_LookbackParameter(t *testing.T) {
	report := NewInstanceRightsizing(new(mockCollector))

	require.NoError(t, report.Configure(params.Values{"lookback_period": "3"}))
	assert.Equal(t, 90, report.lookbackDays)

	err := report.Configure(params.Values{"lookback_period": "12"})
	var validation *params.ValidationError
	require.ErrorAs(t, err, &validation)
}

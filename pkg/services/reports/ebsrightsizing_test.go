package reports

import (
	"context"
	"testing"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEBSRightsizing_CollectAndScore(t *testing.T) {
	ctx := context.Background()
	collector := new(mockCollector)

	collector.On("VolumeRecommendations", mock.Anything, "eu-west-1").Return([]domain.VolumeRecommendation{
		{
			AccountID:  "123456789012",
			ARN:        "arn:aws:ec2:eu-west-1:123456789012:volume/vol-aaa",
			VolumeType: "gp2",
			SizeGB:     500,
			RootVolume: false,
			Finding:    "NotOptimized",
			Options: []domain.RecommendationOption{
				{Rank: 1, TargetType: "gp3", MonthlySavings: 12.345},
				{Rank: 2, TargetType: "gp3", MonthlySavings: 8.0},
			},
		},
		{
			AccountID:  "123456789012",
			ARN:        "arn:aws:ec2:eu-west-1:123456789012:volume/vol-bbb",
			VolumeType: "gp3",
			SizeGB:     100,
			RootVolume: true,
			Finding:    "Optimized",
			Options:    []domain.RecommendationOption{{Rank: 3, TargetType: "gp3", MonthlySavings: 1.0}},
		},
	}, nil)

	report := NewEBSRightsizing(collector)
	table, err := report.CollectAndScore(ctx, testScope())
	require.NoError(t, err)
	require.NoError(t, ValidateColumns(report, table))

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "gp2", table.Rows[0][2])
	assert.Equal(t, "No", table.Rows[0][4])
	assert.Equal(t, 2, table.Rows[0][6])
	assert.Equal(t, 12.35, table.Rows[0][7])

	// A lone non-rank-1 option still counts as the preferred one; two or
	// more options without a rank 1 would yield zero.
	assert.Equal(t, "Yes", table.Rows[1][4])
	assert.Equal(t, 1.0, table.Rows[1][7])
}

func TestEBSRightsizing_PlaceholderOnEmpty(t *testing.T) {
	ctx := context.Background()
	collector := new(mockCollector)

	collector.On("VolumeRecommendations", mock.Anything, "eu-west-1").
		Return([]domain.VolumeRecommendation{}, nil)

	report := NewEBSRightsizing(collector)
	table, err := report.CollectAndScore(ctx, testScope())
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "No volume recommendations found", table.Rows[0][1])
	assert.Equal(t, 0.0, report.EstimatedSavings(true))
}

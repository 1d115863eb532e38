package aws

import (
	"context"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOptimizer struct {
	rdsOutput *computeoptimizer.GetRDSDatabaseRecommendationsOutput
	region    string
}

func (s *stubOptimizer) GetEC2InstanceRecommendations(_ context.Context, _ *computeoptimizer.GetEC2InstanceRecommendationsInput, _ ...func(*computeoptimizer.Options)) (*computeoptimizer.GetEC2InstanceRecommendationsOutput, error) {
	return &computeoptimizer.GetEC2InstanceRecommendationsOutput{}, nil
}

func (s *stubOptimizer) GetEBSVolumeRecommendations(_ context.Context, _ *computeoptimizer.GetEBSVolumeRecommendationsInput, _ ...func(*computeoptimizer.Options)) (*computeoptimizer.GetEBSVolumeRecommendationsOutput, error) {
	return &computeoptimizer.GetEBSVolumeRecommendationsOutput{}, nil
}

func (s *stubOptimizer) GetRDSDatabaseRecommendations(_ context.Context, _ *computeoptimizer.GetRDSDatabaseRecommendationsInput, optFns ...func(*computeoptimizer.Options)) (*computeoptimizer.GetRDSDatabaseRecommendationsOutput, error) {
	opts := computeoptimizer.Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	s.region = opts.Region
	return s.rdsOutput, nil
}

func TestDBRecommendations_MapsPerformanceRisk(t *testing.T) {
	stub := &stubOptimizer{
		rdsOutput: &computeoptimizer.GetRDSDatabaseRecommendationsOutput{
			RdsDBRecommendations: []types.RDSDBRecommendation{
				{
					AccountId:                      awssdk.String("123456789012"),
					ResourceArn:                    awssdk.String("arn:aws:rds:eu-west-1:123456789012:db:orders"),
					Engine:                         awssdk.String("mysql"),
					CurrentDBInstanceClass:         awssdk.String("db.t3.medium"),
					InstanceFinding:                types.RDSInstanceFindingUnderProvisioned,
					CurrentInstancePerformanceRisk: types.RDSCurrentInstancePerformanceRiskHigh,
					UtilizationMetrics: []types.RDSDBUtilizationMetric{
						{Name: types.RDSDBMetricNameCpu, Value: 85},
						{Name: types.RDSDBMetricNameDatabaseConnections, Value: 40},
					},
				},
			},
		},
	}
	collector := &Collector{optimizer: stub}

	recs, err := collector.DBRecommendations(context.Background(), "eu-west-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "eu-west-1", stub.region)
	assert.Equal(t, "mysql", rec.Engine)
	assert.Equal(t, "db.t3.medium", rec.InstanceClass)
	assert.Equal(t, "High", rec.PerformanceRisk)
	assert.Equal(t, 85.0, rec.Metrics["CPU"])
	assert.Equal(t, 40.0, rec.Metrics["DatabaseConnections"])
}

package reports

import (
	"context"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/stretchr/testify/mock"
)

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) ListVolumes(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	args := m.Called(ctx, region, account)
	return args.Get(0).([]domain.ResourceRecord), args.Error(1)
}

func (m *mockCollector) ListDBInstances(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	args := m.Called(ctx, region, account)
	return args.Get(0).([]domain.ResourceRecord), args.Error(1)
}

func (m *mockCollector) ListEBSSnapshots(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	args := m.Called(ctx, region, account)
	return args.Get(0).([]domain.ResourceRecord), args.Error(1)
}

func (m *mockCollector) ListDBSnapshots(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	args := m.Called(ctx, region, account)
	return args.Get(0).([]domain.ResourceRecord), args.Error(1)
}

func (m *mockCollector) InstanceRecommendations(ctx context.Context, region string, arm64Only bool) ([]domain.InstanceRecommendation, error) {
	args := m.Called(ctx, region, arm64Only)
	return args.Get(0).([]domain.InstanceRecommendation), args.Error(1)
}

func (m *mockCollector) VolumeRecommendations(ctx context.Context, region string) ([]domain.VolumeRecommendation, error) {
	args := m.Called(ctx, region)
	return args.Get(0).([]domain.VolumeRecommendation), args.Error(1)
}

func (m *mockCollector) DBRecommendations(ctx context.Context, region string) ([]domain.DBRecommendation, error) {
	args := m.Called(ctx, region)
	return args.Get(0).([]domain.DBRecommendation), args.Error(1)
}

func (m *mockCollector) MetricSeries(ctx context.Context, region, dbID string, days int) (map[string]domain.MetricSeries, error) {
	args := m.Called(ctx, region, dbID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.MetricSeries), args.Error(1)
}

func (m *mockCollector) PlatformDetails(ctx context.Context, region, instanceID string) (string, error) {
	args := m.Called(ctx, region, instanceID)
	return args.String(0), args.Error(1)
}

func testScope() domain.Scope {
	return domain.Scope{Account: "123456789012", Regions: []string{"eu-west-1"}}
}

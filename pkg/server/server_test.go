package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/api"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/aggregator"
	"github.com/de-tools/cost-lens/pkg/services/pricing"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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
	return args.Get(0).(map[string]domain.MetricSeries), args.Error(1)
}

func (m *mockCollector) PlatformDetails(ctx context.Context, region, instanceID string) (string, error) {
	args := m.Called(ctx, region, instanceID)
	return args.String(0), args.Error(1)
}

func testConfig(t *testing.T, collector reports.Collector) Config {
	t.Helper()

	prices := pricing.NewStore()
	registry := reports.NewRegistry()
	require.NoError(t, registry.Register("backup_cost", func(c reports.Collector) reports.Module {
		return reports.NewBackupCost(c, prices)
	}))
	require.NoError(t, registry.Register("graviton_migration", func(c reports.Collector) reports.Module {
		return reports.NewGravitonMigration(c)
	}))

	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		DefaultScope:    domain.Scope{Account: "123456789012", Regions: []string{"eu-west-1"}},
		Dependencies: Dependencies{
			Registry:   registry,
			Collector:  collector,
			Aggregator: aggregator.New(registry, collector),
		},
	}
}

func TestWebAPI_ListReports(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	collector := new(mockCollector)

	router := ConfigureRouter(logger, testConfig(t, collector))
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/v1/reports")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var descriptors []api.ReportDescriptor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&descriptors))

	require.Len(t, descriptors, 2)
	assert.Equal(t, "backup_cost", descriptors[0].Name)
	assert.Equal(t, "AWS BACKUP COST OPTIMIZATION", descriptors[0].Title)
	assert.Equal(t, "graviton_migration", descriptors[1].Name)
}

func TestWebAPI_GetReport(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	collector := new(mockCollector)

	router := ConfigureRouter(logger, testConfig(t, collector))
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/v1/reports/graviton_migration")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var descriptor api.ReportDescriptor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&descriptor))
	assert.Equal(t, "GRAVITON view", descriptor.Title)

	missing, err := http.Get(testServer.URL + "/api/v1/reports/nonexistent")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestWebAPI_RunSingleReport(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	collector := new(mockCollector)

	collector.On("ListVolumes", mock.Anything, "eu-west-1", "123456789012").Return([]domain.ResourceRecord{
		{
			AccountID:  "123456789012",
			ResourceID: "vol-1",
			Type:       domain.ResourceTypeVolume,
			SizeGB:     100,
			Tags:       map[string]string{},
		},
	}, nil)
	collector.On("ListDBInstances", mock.Anything, "eu-west-1", "123456789012").
		Return([]domain.ResourceRecord{}, nil)

	router := ConfigureRouter(logger, testConfig(t, collector))
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Post(testServer.URL+"/api/v1/reports/backup_cost/run", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result api.ReportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "backup_cost", result.Name)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 115.0, result.Savings)
	assert.True(t, result.DisplaySavings)
	assert.Equal(t, api.ChartColumn, result.Presentation.Chart)
}

func TestWebAPI_RunAllWithScopeOverride(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	collector := new(mockCollector)

	collector.On("ListVolumes", mock.Anything, "us-east-1", "999999999999").
		Return([]domain.ResourceRecord{}, nil)
	collector.On("ListDBInstances", mock.Anything, "us-east-1", "999999999999").
		Return([]domain.ResourceRecord{}, nil)
	collector.On("InstanceRecommendations", mock.Anything, "us-east-1", true).
		Return([]domain.InstanceRecommendation{}, nil)

	router := ConfigureRouter(logger, testConfig(t, collector))
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Post(
		testServer.URL+"/api/v1/reports/run?account=999999999999&region=us-east-1",
		"application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary api.RunSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))

	assert.Equal(t, "999999999999", summary.Account)
	require.Len(t, summary.Reports, 2)
	assert.Equal(t, 0.0, summary.TotalSavings)
	collector.AssertExpectations(t)
}

func TestWebAPI_StartSurfacesListenFailure(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	collector := new(mockCollector)

	config := testConfig(t, collector)
	config.Addr = "127.0.0.1:-1"

	api := NewWebAPI(logger, config)
	assert.Error(t, api.Start())
}

func TestWebAPI_UnknownReportIsBadRequest(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	collector := new(mockCollector)

	router := ConfigureRouter(logger, testConfig(t, collector))
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Post(testServer.URL+"/api/v1/reports/nonexistent/run", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "unknown report")
}

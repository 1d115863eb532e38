package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer/types"
	"github.com/de-tools/cost-lens/pkg/models/domain"
)

// optimizerAPI is the slice of the Compute Optimizer client the collector
// calls.
type optimizerAPI interface {
	GetEC2InstanceRecommendations(ctx context.Context, params *computeoptimizer.GetEC2InstanceRecommendationsInput, optFns ...func(*computeoptimizer.Options)) (*computeoptimizer.GetEC2InstanceRecommendationsOutput, error)
	GetEBSVolumeRecommendations(ctx context.Context, params *computeoptimizer.GetEBSVolumeRecommendationsInput, optFns ...func(*computeoptimizer.Options)) (*computeoptimizer.GetEBSVolumeRecommendationsOutput, error)
	GetRDSDatabaseRecommendations(ctx context.Context, params *computeoptimizer.GetRDSDatabaseRecommendationsInput, optFns ...func(*computeoptimizer.Options)) (*computeoptimizer.GetRDSDatabaseRecommendationsOutput, error)
}

// InstanceRecommendations returns normalized Compute Optimizer EC2 findings.
// When arm64Only is set the recommendation preferences are restricted to the
// AWS_ARM64 CPU architecture (Graviton candidates).
func (c *Collector) InstanceRecommendations(ctx context.Context, region string, arm64Only bool) ([]domain.InstanceRecommendation, error) {
	input := &computeoptimizer.GetEC2InstanceRecommendationsInput{}
	if arm64Only {
		input.RecommendationPreferences = &types.RecommendationPreferences{
			CpuVendorArchitectures: []types.CpuVendorArchitecture{types.CpuVendorArchitectureAwsArm64},
		}
	}

	resp, err := c.optimizer.GetEC2InstanceRecommendations(ctx, input, withOptimizerRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to get EC2 instance recommendations: %w", err)
	}

	out := make([]domain.InstanceRecommendation, 0, len(resp.InstanceRecommendations))
	for _, rec := range resp.InstanceRecommendations {
		normalized := domain.InstanceRecommendation{
			AccountID:   aws.ToString(rec.AccountId),
			ARN:         aws.ToString(rec.InstanceArn),
			Name:        aws.ToString(rec.InstanceName),
			CurrentType: aws.ToString(rec.CurrentInstanceType),
			Finding:     string(rec.Finding),
		}
		for _, option := range rec.RecommendationOptions {
			normalized.Options = append(normalized.Options, domain.RecommendationOption{
				Rank:            int(option.Rank),
				TargetType:      aws.ToString(option.InstanceType),
				MonthlySavings:  monthlySavings(option.SavingsOpportunity),
				MigrationEffort: string(option.MigrationEffort),
			})
		}
		out = append(out, normalized)
	}
	return out, nil
}

// VolumeRecommendations returns normalized Compute Optimizer EBS findings.
func (c *Collector) VolumeRecommendations(ctx context.Context, region string) ([]domain.VolumeRecommendation, error) {
	resp, err := c.optimizer.GetEBSVolumeRecommendations(ctx,
		&computeoptimizer.GetEBSVolumeRecommendationsInput{}, withOptimizerRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to get EBS volume recommendations: %w", err)
	}

	out := make([]domain.VolumeRecommendation, 0, len(resp.VolumeRecommendations))
	for _, rec := range resp.VolumeRecommendations {
		normalized := domain.VolumeRecommendation{
			AccountID: aws.ToString(rec.AccountId),
			ARN:       aws.ToString(rec.VolumeArn),
			Finding:   string(rec.Finding),
		}
		if cfg := rec.CurrentConfiguration; cfg != nil {
			normalized.VolumeType = aws.ToString(cfg.VolumeType)
			normalized.SizeGB = float64(cfg.VolumeSize)
			normalized.RootVolume = aws.ToBool(cfg.RootVolume)
		}
		for _, option := range rec.VolumeRecommendationOptions {
			target := ""
			if option.Configuration != nil {
				target = aws.ToString(option.Configuration.VolumeType)
			}
			normalized.Options = append(normalized.Options, domain.RecommendationOption{
				Rank:           int(option.Rank),
				TargetType:     target,
				MonthlySavings: monthlySavings(option.SavingsOpportunity),
			})
		}
		out = append(out, normalized)
	}
	return out, nil
}

// DBRecommendations returns normalized Compute Optimizer RDS findings with
// the per-instance utilization metrics the service reports.
func (c *Collector) DBRecommendations(ctx context.Context, region string) ([]domain.DBRecommendation, error) {
	resp, err := c.optimizer.GetRDSDatabaseRecommendations(ctx,
		&computeoptimizer.GetRDSDatabaseRecommendationsInput{}, withOptimizerRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to get RDS database recommendations: %w", err)
	}

	out := make([]domain.DBRecommendation, 0, len(resp.RdsDBRecommendations))
	for _, rec := range resp.RdsDBRecommendations {
		normalized := domain.DBRecommendation{
			AccountID:       aws.ToString(rec.AccountId),
			ARN:             aws.ToString(rec.ResourceArn),
			Engine:          aws.ToString(rec.Engine),
			InstanceClass:   aws.ToString(rec.CurrentDBInstanceClass),
			Finding:         string(rec.InstanceFinding),
			PerformanceRisk: string(rec.CurrentInstancePerformanceRisk),
			Metrics:         make(map[string]float64, len(rec.UtilizationMetrics)),
		}
		for _, metric := range rec.UtilizationMetrics {
			normalized.Metrics[string(metric.Name)] = metric.Value
		}
		out = append(out, normalized)
	}
	return out, nil
}

func monthlySavings(opportunity *types.SavingsOpportunity) float64 {
	if opportunity == nil || opportunity.EstimatedMonthlySavings == nil {
		return 0
	}
	return opportunity.EstimatedMonthlySavings.Value
}

func withOptimizerRegion(region string) func(*computeoptimizer.Options) {
	return func(o *computeoptimizer.Options) {
		if region != "" {
			o.Region = region
		}
	}
}

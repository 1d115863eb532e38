package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/cost-lens/pkg/models/domain"
)

// ListVolumes returns every in-use EBS volume in the region as a normalized
// resource record with its tags flattened to a map.
func (c *Collector) ListVolumes(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	paginator := ec2.NewDescribeVolumesPaginator(c.ec2, &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{Name: aws.String("status"), Values: []string{"in-use"}},
		},
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, withEC2Region(region))
		if err != nil {
			return nil, fmt.Errorf("failed to describe EBS volumes: %w", err)
		}
		for _, volume := range page.Volumes {
			records = append(records, domain.ResourceRecord{
				AccountID:  account,
				ResourceID: aws.ToString(volume.VolumeId),
				Type:       domain.ResourceTypeVolume,
				SizeGB:     float64(aws.ToInt32(volume.Size)),
				State:      string(volume.State),
				Tags:       flattenEC2Tags(volume.Tags),
			})
		}
	}
	return records, nil
}

// ListEBSSnapshots returns the snapshots owned by the calling account.
func (c *Collector) ListEBSSnapshots(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	paginator := ec2.NewDescribeSnapshotsPaginator(c.ec2, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, withEC2Region(region))
		if err != nil {
			return nil, fmt.Errorf("failed to describe EBS snapshots: %w", err)
		}
		for _, snapshot := range page.Snapshots {
			records = append(records, domain.ResourceRecord{
				AccountID:        account,
				ResourceID:       aws.ToString(snapshot.SnapshotId),
				Type:             domain.ResourceTypeEBSSnapshot,
				SizeGB:           float64(aws.ToInt32(snapshot.VolumeSize)),
				SourceResourceID: aws.ToString(snapshot.VolumeId),
				CreatedAt:        aws.ToTime(snapshot.StartTime),
				Description:      aws.ToString(snapshot.Description),
				Tags:             flattenEC2Tags(snapshot.Tags),
			})
		}
	}
	return records, nil
}

// PlatformDetails looks up the platform of one EC2 instance, e.g. to flag
// Windows workloads excluded from Graviton migration.
func (c *Collector) PlatformDetails(ctx context.Context, region, instanceID string) (string, error) {
	resp, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, withEC2Region(region))
	if err != nil {
		return "", fmt.Errorf("failed to describe instance %s: %w", instanceID, err)
	}
	for _, reservation := range resp.Reservations {
		for _, instance := range reservation.Instances {
			if details := aws.ToString(instance.PlatformDetails); details != "" {
				return details, nil
			}
			return "Unknown", nil
		}
	}
	return "N/A", nil
}

func withEC2Region(region string) func(*ec2.Options) {
	return func(o *ec2.Options) {
		if region != "" {
			o.Region = region
		}
	}
}

func flattenEC2Tags(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return out
}

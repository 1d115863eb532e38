package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ListDBInstances returns every available RDS instance in the region. Tag
// lookups are best effort: a failed ListTagsForResource leaves the record
// untagged, which downstream classification treats as Standard.
func (c *Collector) ListDBInstances(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	paginator := rds.NewDescribeDBInstancesPaginator(c.rds, &rds.DescribeDBInstancesInput{})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, withRDSRegion(region))
		if err != nil {
			return nil, fmt.Errorf("failed to describe RDS instances: %w", err)
		}
		for _, instance := range page.DBInstances {
			if aws.ToString(instance.DBInstanceStatus) != "available" {
				continue
			}
			arn := aws.ToString(instance.DBInstanceArn)
			records = append(records, domain.ResourceRecord{
				AccountID:     account,
				ResourceID:    aws.ToString(instance.DBInstanceIdentifier),
				Type:          domain.ResourceTypeDBInstance,
				SizeGB:        float64(aws.ToInt32(instance.AllocatedStorage)),
				State:         aws.ToString(instance.DBInstanceStatus),
				ARN:           arn,
				Engine:        aws.ToString(instance.Engine),
				InstanceClass: aws.ToString(instance.DBInstanceClass),
				Tags:          c.resourceTags(ctx, region, arn),
			})
		}
	}
	return records, nil
}

// ListDBSnapshots returns the manual RDS snapshots in the region.
func (c *Collector) ListDBSnapshots(ctx context.Context, region, account string) ([]domain.ResourceRecord, error) {
	paginator := rds.NewDescribeDBSnapshotsPaginator(c.rds, &rds.DescribeDBSnapshotsInput{
		SnapshotType: aws.String("manual"),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, withRDSRegion(region))
		if err != nil {
			return nil, fmt.Errorf("failed to describe RDS snapshots: %w", err)
		}
		for _, snapshot := range page.DBSnapshots {
			records = append(records, domain.ResourceRecord{
				AccountID:        account,
				ResourceID:       aws.ToString(snapshot.DBSnapshotIdentifier),
				Type:             domain.ResourceTypeDBSnapshot,
				SizeGB:           float64(aws.ToInt32(snapshot.AllocatedStorage)),
				SourceResourceID: aws.ToString(snapshot.DBInstanceIdentifier),
				CreatedAt:        aws.ToTime(snapshot.SnapshotCreateTime),
				Description:      "Manual RDS snapshot",
				Tags:             c.resourceTags(ctx, region, aws.ToString(snapshot.DBSnapshotArn)),
			})
		}
	}
	return records, nil
}

func (c *Collector) resourceTags(ctx context.Context, region, arn string) map[string]string {
	resp, err := c.rds.ListTagsForResource(ctx, &rds.ListTagsForResourceInput{
		ResourceName: aws.String(arn),
	}, withRDSRegion(region))
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("arn", arn).Msg("tag lookup failed")
		return nil
	}
	return flattenRDSTags(resp.TagList)
}

func withRDSRegion(region string) func(*rds.Options) {
	return func(o *rds.Options) {
		if region != "" {
			o.Region = region
		}
	}
}

func flattenRDSTags(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return out
}

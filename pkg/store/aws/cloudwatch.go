package aws

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/rs/zerolog"
)

// rdsMetricNames are the series retrieved for spike analysis.
var rdsMetricNames = []string{
	"CPUUtilization",
	"DatabaseConnections",
	"ReadIOPS",
	"WriteIOPS",
	"FreeableMemory",
}

const metricPeriod = 3600 // one-hour intervals

// MetricSeries fetches the hourly utilization series of one RDS instance
// over the given lookback window. A failed individual metric is logged and
// omitted; the caller decides whether the remainder is sufficient.
func (c *Collector) MetricSeries(ctx context.Context, region, dbID string, days int) (map[string]domain.MetricSeries, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	logger := zerolog.Ctx(ctx)

	series := make(map[string]domain.MetricSeries, len(rdsMetricNames))
	for _, name := range rdsMetricNames {
		resp, err := c.cw.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
			Namespace:  aws.String("AWS/RDS"),
			MetricName: aws.String(name),
			Dimensions: []types.Dimension{
				{Name: aws.String("DBInstanceIdentifier"), Value: aws.String(dbID)},
			},
			StartTime: aws.Time(start),
			EndTime:   aws.Time(end),
			Period:    aws.Int32(metricPeriod),
			Statistics: []types.Statistic{
				types.StatisticAverage,
				types.StatisticMaximum,
				types.StatisticMinimum,
			},
		}, withCloudWatchRegion(region))
		if err != nil {
			logger.Warn().Err(err).
				Str("db", dbID).
				Str("metric", name).
				Msg("metric retrieval failed")
			continue
		}
		if len(resp.Datapoints) == 0 {
			continue
		}

		points := resp.Datapoints
		sort.Slice(points, func(i, j int) bool {
			return aws.ToTime(points[i].Timestamp).Before(aws.ToTime(points[j].Timestamp))
		})

		s := domain.MetricSeries{
			Avg: make([]float64, 0, len(points)),
			Max: make([]float64, 0, len(points)),
			Min: make([]float64, 0, len(points)),
		}
		for _, dp := range points {
			s.Avg = append(s.Avg, aws.ToFloat64(dp.Average))
			s.Max = append(s.Max, aws.ToFloat64(dp.Maximum))
			s.Min = append(s.Min, aws.ToFloat64(dp.Minimum))
		}
		series[name] = s
	}
	return series, nil
}

func withCloudWatchRegion(region string) func(*cloudwatch.Options) {
	return func(o *cloudwatch.Options) {
		if region != "" {
			o.Region = region
		}
	}
}

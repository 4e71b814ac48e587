package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
)

// CloudWatchClientProvider returns a CloudWatch client bound to the given region.
type CloudWatchClientProvider func(region string) CloudWatchAPI

// MetricsRepositoryImpl implementa o MetricsRepository sobre o CloudWatch.
type MetricsRepositoryImpl struct {
	clients CloudWatchClientProvider
}

// NewMetricsRepository cria uma nova implementação do MetricsRepository.
func NewMetricsRepository(clients CloudWatchClientProvider) repository.MetricsRepository {
	return &MetricsRepositoryImpl{clients: clients}
}

// GetBucketSizeBytes returns the most recent daily average of BucketSizeBytes
// for one storage type. No datapoints in the window means absent.
func (r *MetricsRepositoryImpl) GetBucketSizeBytes(ctx context.Context, region, bucket, storageType string, window entity.MetricWindow) entity.Fact[float64] {
	period := int32(window.Period.Seconds())
	if period <= 0 {
		period = 86400
	}

	out, err := r.clients(region).GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/S3"),
		MetricName: aws.String("BucketSizeBytes"),
		Dimensions: []cwTypes.Dimension{
			{Name: aws.String("BucketName"), Value: aws.String(bucket)},
			{Name: aws.String("StorageType"), Value: aws.String(storageType)},
		},
		StartTime:  aws.Time(window.Start),
		EndTime:    aws.Time(window.End),
		Period:     aws.Int32(period),
		Statistics: []cwTypes.Statistic{cwTypes.StatisticAverage},
	})
	if err != nil {
		return entity.Failed[float64](fmt.Errorf("error getting %s metric of bucket %s in %s: %w", storageType, bucket, region, err))
	}

	latest, ok := latestDatapoint(out.Datapoints)
	if !ok {
		return entity.Absent[float64]()
	}
	return entity.Present(aws.ToFloat64(latest.Average))
}

// latestDatapoint picks the datapoint with the newest timestamp. CloudWatch does not order them.
func latestDatapoint(points []cwTypes.Datapoint) (cwTypes.Datapoint, bool) {
	var (
		latest cwTypes.Datapoint
		found  bool
	)
	for _, dp := range points {
		if dp.Average == nil {
			continue
		}
		if !found || aws.ToTime(dp.Timestamp).After(aws.ToTime(latest.Timestamp)) {
			latest = dp
			found = true
		}
	}
	return latest, found
}

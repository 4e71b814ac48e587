package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatchClient struct {
	getMetricStatistics func(*cloudwatch.GetMetricStatisticsInput) (*cloudwatch.GetMetricStatisticsOutput, error)
}

func (f *fakeCloudWatchClient) GetMetricStatistics(_ context.Context, in *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	return f.getMetricStatistics(in)
}

func TestMetricsRepository_GetBucketSizeBytes(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	window := entity.TrailingWindow(now, 3)

	t.Run("queries the bucket region with the expected dimensions", func(t *testing.T) {
		var asked string
		var got *cloudwatch.GetMetricStatisticsInput
		client := &fakeCloudWatchClient{
			getMetricStatistics: func(in *cloudwatch.GetMetricStatisticsInput) (*cloudwatch.GetMetricStatisticsOutput, error) {
				got = in
				return &cloudwatch.GetMetricStatisticsOutput{}, nil
			},
		}
		repo := NewMetricsRepository(func(region string) CloudWatchAPI {
			asked = region
			return client
		})

		repo.GetBucketSizeBytes(context.Background(), "eu-central-1", "media", "GlacierStorage", window)

		assert.Equal(t, "eu-central-1", asked)
		require.NotNil(t, got)
		assert.Equal(t, "AWS/S3", aws.ToString(got.Namespace))
		assert.Equal(t, "BucketSizeBytes", aws.ToString(got.MetricName))
		assert.Equal(t, int32(86400), aws.ToInt32(got.Period))
		assert.Equal(t, []cwTypes.Statistic{cwTypes.StatisticAverage}, got.Statistics)
		assert.Equal(t, now.AddDate(0, 0, -3), aws.ToTime(got.StartTime))
		assert.Equal(t, now, aws.ToTime(got.EndTime))
		require.Len(t, got.Dimensions, 2)
		assert.Equal(t, "BucketName", aws.ToString(got.Dimensions[0].Name))
		assert.Equal(t, "media", aws.ToString(got.Dimensions[0].Value))
		assert.Equal(t, "StorageType", aws.ToString(got.Dimensions[1].Name))
		assert.Equal(t, "GlacierStorage", aws.ToString(got.Dimensions[1].Value))
	})

	t.Run("uses the most recent datapoint", func(t *testing.T) {
		client := &fakeCloudWatchClient{
			getMetricStatistics: func(*cloudwatch.GetMetricStatisticsInput) (*cloudwatch.GetMetricStatisticsOutput, error) {
				return &cloudwatch.GetMetricStatisticsOutput{Datapoints: []cwTypes.Datapoint{
					{Timestamp: aws.Time(now.AddDate(0, 0, -2)), Average: aws.Float64(100)},
					{Timestamp: aws.Time(now.AddDate(0, 0, -1)), Average: aws.Float64(300)},
					{Timestamp: aws.Time(now.AddDate(0, 0, -3)), Average: aws.Float64(50)},
				}}, nil
			},
		}
		repo := NewMetricsRepository(func(string) CloudWatchAPI { return client })

		fact := repo.GetBucketSizeBytes(context.Background(), "us-east-1", "media", "StandardStorage", window)

		assert.Equal(t, entity.Present(300.0), fact)
	})

	t.Run("no datapoints is absent", func(t *testing.T) {
		client := &fakeCloudWatchClient{
			getMetricStatistics: func(*cloudwatch.GetMetricStatisticsInput) (*cloudwatch.GetMetricStatisticsOutput, error) {
				return &cloudwatch.GetMetricStatisticsOutput{}, nil
			},
		}
		repo := NewMetricsRepository(func(string) CloudWatchAPI { return client })

		fact := repo.GetBucketSizeBytes(context.Background(), "us-east-1", "media", "StandardStorage", window)

		assert.True(t, fact.IsAbsent())
	})

	t.Run("query error is a failure, not zero", func(t *testing.T) {
		boom := errors.New("throttled")
		client := &fakeCloudWatchClient{
			getMetricStatistics: func(*cloudwatch.GetMetricStatisticsInput) (*cloudwatch.GetMetricStatisticsOutput, error) {
				return nil, boom
			},
		}
		repo := NewMetricsRepository(func(string) CloudWatchAPI { return client })

		fact := repo.GetBucketSizeBytes(context.Background(), "us-east-1", "media", "StandardStorage", window)

		assert.True(t, fact.IsFailed())
		assert.ErrorIs(t, fact.Err, boom)
	})
}

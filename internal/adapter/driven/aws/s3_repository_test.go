package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3Client struct {
	listBuckets        func(*s3.ListBucketsInput) (*s3.ListBucketsOutput, error)
	getBucketLocation  func(*s3.GetBucketLocationInput) (*s3.GetBucketLocationOutput, error)
	getLifecycle       func(*s3.GetBucketLifecycleConfigurationInput) (*s3.GetBucketLifecycleConfigurationOutput, error)
	getPublicAccessBlk func(*s3.GetPublicAccessBlockInput) (*s3.GetPublicAccessBlockOutput, error)
}

func (f *fakeS3Client) ListBuckets(_ context.Context, in *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	return f.listBuckets(in)
}

func (f *fakeS3Client) GetBucketLocation(_ context.Context, in *s3.GetBucketLocationInput, _ ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	return f.getBucketLocation(in)
}

func (f *fakeS3Client) GetBucketLifecycleConfiguration(_ context.Context, in *s3.GetBucketLifecycleConfigurationInput, _ ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error) {
	return f.getLifecycle(in)
}

func (f *fakeS3Client) GetPublicAccessBlock(_ context.Context, in *s3.GetPublicAccessBlockInput, _ ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error) {
	return f.getPublicAccessBlk(in)
}

// singleClient serves every region with the same fake and records the regions asked for.
func singleClient(c S3API, regions *[]string) S3ClientProvider {
	return func(region string) S3API {
		if regions != nil {
			*regions = append(*regions, region)
		}
		return c
	}
}

func TestS3Repository_ListBuckets(t *testing.T) {
	created := time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC)

	t.Run("returns buckets in listing order", func(t *testing.T) {
		client := &fakeS3Client{
			listBuckets: func(*s3.ListBucketsInput) (*s3.ListBucketsOutput, error) {
				return &s3.ListBucketsOutput{Buckets: []s3types.Bucket{
					{Name: aws.String("zeta"), CreationDate: aws.Time(created)},
					{Name: aws.String("alpha"), CreationDate: aws.Time(created)},
				}}, nil
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "eu-west-1")

		buckets, err := repo.ListBuckets(context.Background())

		require.NoError(t, err)
		require.Len(t, buckets, 2)
		assert.Equal(t, "zeta", buckets[0].Name)
		assert.Equal(t, "alpha", buckets[1].Name)
		assert.True(t, created.Equal(buckets[0].CreationDate))
	})

	t.Run("follows continuation tokens", func(t *testing.T) {
		calls := 0
		client := &fakeS3Client{
			listBuckets: func(in *s3.ListBucketsInput) (*s3.ListBucketsOutput, error) {
				calls++
				if in.ContinuationToken == nil {
					return &s3.ListBucketsOutput{
						Buckets:           []s3types.Bucket{{Name: aws.String("first")}},
						ContinuationToken: aws.String("next"),
					}, nil
				}
				return &s3.ListBucketsOutput{Buckets: []s3types.Bucket{{Name: aws.String("second")}}}, nil
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		buckets, err := repo.ListBuckets(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, []entity.Bucket{{Name: "first"}, {Name: "second"}}, buckets)
	})

	t.Run("listing failure is returned", func(t *testing.T) {
		boom := errors.New("access denied")
		client := &fakeS3Client{
			listBuckets: func(*s3.ListBucketsInput) (*s3.ListBucketsOutput, error) { return nil, boom },
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		buckets, err := repo.ListBuckets(context.Background())

		assert.Nil(t, buckets)
		assert.ErrorIs(t, err, boom)
	})
}

func TestS3Repository_GetBucketRegion(t *testing.T) {
	cases := []struct {
		constraint s3types.BucketLocationConstraint
		want       string
	}{
		{"", "us-east-1"},
		{"EU", "eu-west-1"},
		{"ap-south-1", "ap-south-1"},
	}
	for _, tc := range cases {
		t.Run(string(tc.constraint), func(t *testing.T) {
			client := &fakeS3Client{
				getBucketLocation: func(in *s3.GetBucketLocationInput) (*s3.GetBucketLocationOutput, error) {
					assert.Equal(t, "logs", aws.ToString(in.Bucket))
					return &s3.GetBucketLocationOutput{LocationConstraint: tc.constraint}, nil
				},
			}
			repo := NewS3Repository(singleClient(client, nil), "")

			fact := repo.GetBucketRegion(context.Background(), "logs")

			assert.True(t, fact.IsPresent())
			assert.Equal(t, tc.want, fact.Value)
		})
	}

	t.Run("error yields failed fact", func(t *testing.T) {
		client := &fakeS3Client{
			getBucketLocation: func(*s3.GetBucketLocationInput) (*s3.GetBucketLocationOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "AccessDenied"}
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		fact := repo.GetBucketRegion(context.Background(), "logs")

		assert.True(t, fact.IsFailed())
		assert.Error(t, fact.Err)
	})
}

func TestS3Repository_GetLifecycleRuleCount(t *testing.T) {
	t.Run("counts rules using the bucket region client", func(t *testing.T) {
		var regions []string
		client := &fakeS3Client{
			getLifecycle: func(*s3.GetBucketLifecycleConfigurationInput) (*s3.GetBucketLifecycleConfigurationOutput, error) {
				return &s3.GetBucketLifecycleConfigurationOutput{
					Rules: []s3types.LifecycleRule{{ID: aws.String("a")}, {ID: aws.String("b")}},
				}, nil
			},
		}
		repo := NewS3Repository(singleClient(client, &regions), "us-east-1")

		fact := repo.GetLifecycleRuleCount(context.Background(), "sa-east-1", "media")

		assert.Equal(t, entity.Present(2), fact)
		assert.Equal(t, []string{"sa-east-1"}, regions)
	})

	t.Run("unknown region falls back to default client", func(t *testing.T) {
		var regions []string
		client := &fakeS3Client{
			getLifecycle: func(*s3.GetBucketLifecycleConfigurationInput) (*s3.GetBucketLifecycleConfigurationOutput, error) {
				return &s3.GetBucketLifecycleConfigurationOutput{}, nil
			},
		}
		repo := NewS3Repository(singleClient(client, &regions), "us-east-2")

		repo.GetLifecycleRuleCount(context.Background(), "", "media")

		assert.Equal(t, []string{"us-east-2"}, regions)
	})

	t.Run("no lifecycle configuration is absent", func(t *testing.T) {
		client := &fakeS3Client{
			getLifecycle: func(*s3.GetBucketLifecycleConfigurationInput) (*s3.GetBucketLifecycleConfigurationOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "NoSuchLifecycleConfiguration", Message: "none"}
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		fact := repo.GetLifecycleRuleCount(context.Background(), "us-east-1", "media")

		assert.True(t, fact.IsAbsent())
	})

	t.Run("other errors are failures", func(t *testing.T) {
		client := &fakeS3Client{
			getLifecycle: func(*s3.GetBucketLifecycleConfigurationInput) (*s3.GetBucketLifecycleConfigurationOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "AccessDenied"}
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		fact := repo.GetLifecycleRuleCount(context.Background(), "us-east-1", "media")

		assert.True(t, fact.IsFailed())
		assert.True(t, hasErrorCode(fact.Err, "AccessDenied"))
	})
}

func TestS3Repository_GetPublicAccessBlock(t *testing.T) {
	t.Run("present configuration", func(t *testing.T) {
		client := &fakeS3Client{
			getPublicAccessBlk: func(*s3.GetPublicAccessBlockInput) (*s3.GetPublicAccessBlockOutput, error) {
				return &s3.GetPublicAccessBlockOutput{
					PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
						BlockPublicAcls:       aws.Bool(true),
						IgnorePublicAcls:      aws.Bool(true),
						BlockPublicPolicy:     aws.Bool(false),
						RestrictPublicBuckets: aws.Bool(true),
					},
				}, nil
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		fact := repo.GetPublicAccessBlock(context.Background(), "us-east-1", "site")

		require.True(t, fact.IsPresent())
		assert.False(t, fact.Value.FullyBlocking())
		assert.False(t, fact.Value.BlockPublicPolicy)
	})

	t.Run("missing configuration is absent", func(t *testing.T) {
		client := &fakeS3Client{
			getPublicAccessBlk: func(*s3.GetPublicAccessBlockInput) (*s3.GetPublicAccessBlockOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "NoSuchPublicAccessBlockConfiguration"}
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		fact := repo.GetPublicAccessBlock(context.Background(), "us-east-1", "site")

		assert.True(t, fact.IsAbsent())
	})

	t.Run("throttling is a failure", func(t *testing.T) {
		client := &fakeS3Client{
			getPublicAccessBlk: func(*s3.GetPublicAccessBlockInput) (*s3.GetPublicAccessBlockOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "SlowDown"}
			},
		}
		repo := NewS3Repository(singleClient(client, nil), "")

		fact := repo.GetPublicAccessBlock(context.Background(), "us-east-1", "site")

		assert.True(t, fact.IsFailed())
	})
}

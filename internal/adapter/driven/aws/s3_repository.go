package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
)

// S3ClientProvider returns an S3 client bound to the given region.
type S3ClientProvider func(region string) S3API

// S3RepositoryImpl implementa o StorageRepository sobre o S3.
type S3RepositoryImpl struct {
	clients       S3ClientProvider
	defaultRegion string
}

// NewS3Repository cria uma nova implementação do StorageRepository.
func NewS3Repository(clients S3ClientProvider, defaultRegion string) repository.StorageRepository {
	if defaultRegion == "" {
		defaultRegion = DefaultRegion
	}
	return &S3RepositoryImpl{
		clients:       clients,
		defaultRegion: defaultRegion,
	}
}

// ListBuckets returns every bucket owned by the account, in listing order.
func (r *S3RepositoryImpl) ListBuckets(ctx context.Context) ([]entity.Bucket, error) {
	var buckets []entity.Bucket

	paginator := s3.NewListBucketsPaginator(r.clients(r.defaultRegion), &s3.ListBucketsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing S3 buckets: %w", err)
		}
		for _, b := range page.Buckets {
			buckets = append(buckets, entity.Bucket{
				Name:         aws.ToString(b.Name),
				CreationDate: aws.ToTime(b.CreationDate).UTC(),
			})
		}
	}

	return buckets, nil
}

// GetBucketRegion resolves the bucket's home region from its location constraint.
func (r *S3RepositoryImpl) GetBucketRegion(ctx context.Context, bucket string) entity.Fact[string] {
	out, err := r.clients(r.defaultRegion).GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return entity.Failed[string](fmt.Errorf("error getting location of bucket %s: %w", bucket, err))
	}
	return entity.Present(normalizeLocation(string(out.LocationConstraint)))
}

// normalizeLocation maps the legacy location constraints onto region names.
func normalizeLocation(constraint string) string {
	switch constraint {
	case "":
		return "us-east-1"
	case "EU":
		return "eu-west-1"
	default:
		return constraint
	}
}

// GetLifecycleRuleCount returns the number of lifecycle rules of the bucket.
func (r *S3RepositoryImpl) GetLifecycleRuleCount(ctx context.Context, region, bucket string) entity.Fact[int] {
	out, err := r.clientFor(region).GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if hasErrorCode(err, codeNoSuchLifecycleConfiguration) {
			return entity.Absent[int]()
		}
		return entity.Failed[int](fmt.Errorf("error getting lifecycle configuration of bucket %s: %w", bucket, err))
	}
	return entity.Present(len(out.Rules))
}

// GetPublicAccessBlock returns the bucket-level Block Public Access settings.
func (r *S3RepositoryImpl) GetPublicAccessBlock(ctx context.Context, region, bucket string) entity.Fact[entity.PublicAccessBlock] {
	out, err := r.clientFor(region).GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if hasErrorCode(err, codeNoSuchPublicAccessBlockConfig) {
			return entity.Absent[entity.PublicAccessBlock]()
		}
		return entity.Failed[entity.PublicAccessBlock](fmt.Errorf("error getting public access block of bucket %s: %w", bucket, err))
	}

	cfg := out.PublicAccessBlockConfiguration
	if cfg == nil {
		return entity.Absent[entity.PublicAccessBlock]()
	}
	return entity.Present(entity.PublicAccessBlock{
		BlockPublicAcls:       aws.ToBool(cfg.BlockPublicAcls),
		IgnorePublicAcls:      aws.ToBool(cfg.IgnorePublicAcls),
		BlockPublicPolicy:     aws.ToBool(cfg.BlockPublicPolicy),
		RestrictPublicBuckets: aws.ToBool(cfg.RestrictPublicBuckets),
	})
}

func (r *S3RepositoryImpl) clientFor(region string) S3API {
	if region == "" {
		region = r.defaultRegion
	}
	return r.clients(region)
}

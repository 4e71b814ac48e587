package repository

import (
	"context"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
)

// StorageRepository lists S3 buckets and reads their per-bucket configuration.
// Fact methods never return a bare error: the outcome is encoded in the Fact state.
type StorageRepository interface {
	// Listing
	ListBuckets(ctx context.Context) ([]entity.Bucket, error)

	// Facts
	GetBucketRegion(ctx context.Context, bucket string) entity.Fact[string]
	GetLifecycleRuleCount(ctx context.Context, region, bucket string) entity.Fact[int]
	GetPublicAccessBlock(ctx context.Context, region, bucket string) entity.Fact[entity.PublicAccessBlock]
}

// MetricsRepository reads usage metrics. Queries are routed to the given region.
type MetricsRepository interface {
	GetBucketSizeBytes(ctx context.Context, region, bucket, storageType string, window entity.MetricWindow) entity.Fact[float64]
}

// IdentityRepository lists IAM users and their memberships, keys and policies.
type IdentityRepository interface {
	// Listing
	ListUsers(ctx context.Context) ([]entity.User, error)

	// Facts
	ListGroupsForUser(ctx context.Context, userName string) entity.Fact[[]string]
	HasConsoleAccess(ctx context.Context, userName string) entity.Fact[bool]
	ListAccessKeys(ctx context.Context, userName string) entity.Fact[[]entity.AccessKey]
	ListUserPolicies(ctx context.Context, userName string) entity.Fact[[]entity.Policy]
}

// AccountRepository resolves the account that owns the audited resources.
type AccountRepository interface {
	GetAccountID(ctx context.Context) (string, error)
}

// ProfileRepository lists the AWS profiles available in the shared config files.
type ProfileRepository interface {
	GetAWSProfiles() ([]string, error)
}

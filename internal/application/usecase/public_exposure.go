package usecase

import (
	"context"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
)

// PublicAccessText is the Access column value of every exposed bucket.
const PublicAccessText = "Bucket is Public (Block all public access is disabled)"

// PublicExposureSchema declares the public exposure columns.
func PublicExposureSchema() entity.Schema[entity.BucketExposureFacts] {
	return entity.NewSchema(
		entity.Column[entity.BucketExposureFacts]{
			Name:  "Name",
			Value: func(f entity.BucketExposureFacts) entity.Cell { return entity.TextCell(f.Bucket.Name) },
		},
		entity.Column[entity.BucketExposureFacts]{
			Name:   "AWS Region",
			Absent: unknownText,
			Value: func(f entity.BucketExposureFacts) entity.Cell {
				return entity.CellOf(f.Region, func(r string) string { return r })
			},
		},
		entity.Column[entity.BucketExposureFacts]{
			Name:  "Access",
			Value: func(entity.BucketExposureFacts) entity.Cell { return entity.TextCell(PublicAccessText) },
		},
		entity.Column[entity.BucketExposureFacts]{
			Name:   "CreationTime",
			Absent: unknownText,
			Value:  func(f entity.BucketExposureFacts) entity.Cell { return formatTimestamp(f.Bucket.CreationDate) },
		},
	)
}

// publicExposureAudit lista apenas os buckets que não bloqueiam totalmente o acesso público.
type publicExposureAudit struct {
	storage repository.StorageRepository
	guard   *factGuard
}

func (a *publicExposureAudit) pipeline() Pipeline[entity.Bucket, entity.BucketExposureFacts] {
	return Pipeline[entity.Bucket, entity.BucketExposureFacts]{
		Resources: "S3 buckets",
		List:      a.storage.ListBuckets,
		Collect:   a.collect,
		Include: func(f entity.BucketExposureFacts) bool {
			return entity.IsPubliclyExposed(f.PublicAccessBlock)
		},
		Schema: PublicExposureSchema(),
	}
}

func (a *publicExposureAudit) collect(ctx context.Context, bucket entity.Bucket) (entity.BucketExposureFacts, error) {
	facts := entity.BucketExposureFacts{Bucket: bucket}

	facts.Region = a.storage.GetBucketRegion(ctx, bucket.Name)
	if err := checkFact(a.guard, bucket.Name, "Region", facts.Region, Substitute); err != nil {
		return facts, err
	}

	facts.PublicAccessBlock = a.storage.GetPublicAccessBlock(ctx, facts.Region.ValueOr(""), bucket.Name)
	if err := checkFact(a.guard, bucket.Name, "PublicAccessBlock", facts.PublicAccessBlock, Exclude); err != nil {
		return facts, err
	}

	return facts, nil
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
	"github.com/diillson/aws-audit-reports/pkg/units"
)

const (
	// TimestampLayout is how creation times are written in every report.
	TimestampLayout = "2006-01-02 15:04:05 UTC"

	unknownText     = "Unknown"
	unavailableText = "Unavailable"
)

var errRegionUnresolved = errors.New("bucket region could not be resolved")

func formatTimestamp(t time.Time) entity.Cell {
	if t.IsZero() {
		return entity.Cell{}
	}
	return entity.TextCell(t.UTC().Format(TimestampLayout))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// StorageUsageSchema declares the storage usage columns; one usage column per storage class.
func StorageUsageSchema(storageClasses []string) entity.Schema[entity.BucketUsageFacts] {
	columns := []entity.Column[entity.BucketUsageFacts]{
		{
			Name:  "Bucket",
			Value: func(f entity.BucketUsageFacts) entity.Cell { return entity.TextCell(f.Bucket.Name) },
		},
		{
			Name:   "CreatedDate",
			Absent: unknownText,
			Value:  func(f entity.BucketUsageFacts) entity.Cell { return formatTimestamp(f.Bucket.CreationDate) },
		},
		{
			Name:   "Region",
			Absent: unknownText,
			Value: func(f entity.BucketUsageFacts) entity.Cell {
				return entity.CellOf(f.Region, func(r string) string { return r })
			},
		},
		{
			Name:   "LifecycleRules",
			Absent: "No",
			Failed: unknownText,
			Value: func(f entity.BucketUsageFacts) entity.Cell {
				return entity.CellOf(f.LifecycleRules, func(n int) string { return yesNo(n > 0) })
			},
		},
	}

	for _, class := range storageClasses {
		class := class
		columns = append(columns, entity.Column[entity.BucketUsageFacts]{
			Name:   class,
			Absent: units.HumanizeBytes(0),
			Failed: unavailableText,
			Value: func(f entity.BucketUsageFacts) entity.Cell {
				return entity.CellOf(f.Storage[class], units.HumanizeBytes)
			},
		})
	}

	return entity.NewSchema(columns...)
}

// storageUsageAudit coleta região, regras de lifecycle e métricas de tamanho por bucket.
type storageUsageAudit struct {
	storage        repository.StorageRepository
	metrics        repository.MetricsRepository
	storageClasses []string
	window         entity.MetricWindow
	guard          *factGuard
}

func (a *storageUsageAudit) pipeline() Pipeline[entity.Bucket, entity.BucketUsageFacts] {
	return Pipeline[entity.Bucket, entity.BucketUsageFacts]{
		Resources: "S3 buckets",
		List:      a.storage.ListBuckets,
		Collect:   a.collect,
		Schema:    StorageUsageSchema(a.storageClasses),
	}
}

func (a *storageUsageAudit) collect(ctx context.Context, bucket entity.Bucket) (entity.BucketUsageFacts, error) {
	facts := entity.BucketUsageFacts{
		Bucket:  bucket,
		Storage: make(map[string]entity.Fact[float64], len(a.storageClasses)),
	}

	facts.Region = a.storage.GetBucketRegion(ctx, bucket.Name)
	if err := checkFact(a.guard, bucket.Name, "Region", facts.Region, Substitute); err != nil {
		return facts, err
	}
	region := facts.Region.ValueOr("")

	facts.LifecycleRules = a.storage.GetLifecycleRuleCount(ctx, region, bucket.Name)
	if err := checkFact(a.guard, bucket.Name, "LifecycleRules", facts.LifecycleRules, Substitute); err != nil {
		return facts, err
	}

	for _, class := range a.storageClasses {
		// Métricas são regionais: sem região não há onde consultar.
		if !facts.Region.IsPresent() {
			facts.Storage[class] = entity.Failed[float64](errRegionUnresolved)
			continue
		}
		usage := a.metrics.GetBucketSizeBytes(ctx, region, bucket.Name, class, a.window)
		if err := checkFact(a.guard, bucket.Name, class, usage, Substitute); err != nil {
			return facts, err
		}
		facts.Storage[class] = usage
	}

	return facts, nil
}

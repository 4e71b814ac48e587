package entity

import "time"

// Bucket is a listed S3 bucket. Region is collected later as a fact.
type Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// PublicAccessBlock espelha os quatro flags do "Block Public Access" no nível do bucket.
type PublicAccessBlock struct {
	BlockPublicAcls       bool `json:"block_public_acls"`
	IgnorePublicAcls      bool `json:"ignore_public_acls"`
	BlockPublicPolicy     bool `json:"block_public_policy"`
	RestrictPublicBuckets bool `json:"restrict_public_buckets"`
}

// FullyBlocking reports whether every flag is enabled.
func (b PublicAccessBlock) FullyBlocking() bool {
	return b.BlockPublicAcls && b.IgnorePublicAcls && b.BlockPublicPolicy && b.RestrictPublicBuckets
}

// IsPubliclyExposed decides exposure from the block-config fact. A bucket with
// no configuration at all does not block public access.
func IsPubliclyExposed(block Fact[PublicAccessBlock]) bool {
	switch block.State {
	case FactPresent:
		return !block.Value.FullyBlocking()
	case FactAbsent:
		return true
	default:
		return false
	}
}

// BucketUsageFacts são os fatos coletados para o relatório de uso de storage.
type BucketUsageFacts struct {
	Bucket         Bucket
	Region         Fact[string]
	LifecycleRules Fact[int]
	// Storage is keyed by CloudWatch StorageType. A missing key reads as absent.
	Storage map[string]Fact[float64]
}

// BucketExposureFacts são os fatos coletados para o relatório de exposição pública.
type BucketExposureFacts struct {
	Bucket            Bucket
	Region            Fact[string]
	PublicAccessBlock Fact[PublicAccessBlock]
}

// DefaultStorageClasses lists the CloudWatch StorageType dimensions reported per bucket.
var DefaultStorageClasses = []string{
	"StandardStorage",
	"GlacierStorage",
	"DeepArchiveStorage",
	"DeepArchiveObjectOverhead",
	"DeepArchiveS3ObjectOverhead",
	"StandardIAStorage",
	"IntelligentTieringFAStorage",
	"IntelligentTieringIAStorage",
}

// MetricWindow is the trailing range and granularity used for usage metrics.
type MetricWindow struct {
	Start  time.Time
	End    time.Time
	Period time.Duration
}

// TrailingWindow returns a window ending at now and covering the given number of days at daily granularity.
func TrailingWindow(now time.Time, days int) MetricWindow {
	if days <= 0 {
		days = 3
	}
	end := now.UTC()
	return MetricWindow{
		Start:  end.AddDate(0, 0, -days),
		End:    end,
		Period: 24 * time.Hour,
	}
}

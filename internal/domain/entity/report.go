package entity

import "time"

// ReportKind identifies one audit.
type ReportKind string

const (
	ReportStorageUsage   ReportKind = "storage"
	ReportPublicExposure ReportKind = "public"
	ReportIdentity       ReportKind = "identity"
)

// AllReportKinds is the order in which the "all" command runs the audits.
var AllReportKinds = []ReportKind{ReportStorageUsage, ReportPublicExposure, ReportIdentity}

// Title returns a human readable report name.
func (k ReportKind) Title() string {
	switch k {
	case ReportStorageUsage:
		return "S3 Storage Usage"
	case ReportPublicExposure:
		return "Publicly Exposed S3 Buckets"
	case ReportIdentity:
		return "IAM Users"
	default:
		return string(k)
	}
}

// DefaultFilename is the base name used when no --report-name is given.
func (k ReportKind) DefaultFilename() string {
	switch k {
	case ReportStorageUsage:
		return "s3_storage_summary_full"
	case ReportPublicExposure:
		return "public_s3_buckets"
	case ReportIdentity:
		return "iam_users_info_with_policies_and_groups"
	default:
		return string(k)
	}
}

// Warning records a fact that was substituted or a resource that was excluded
// because collection failed.
type Warning struct {
	Resource string `json:"resource"`
	Fact     string `json:"fact"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

// Report is a finished audit, ready to export.
type Report struct {
	Kind        ReportKind `json:"kind"`
	AccountID   string     `json:"account_id,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
	Header      []string   `json:"columns"`
	Records     []Record   `json:"rows"`
	Listed      int        `json:"listed"`
	Warnings    []Warning  `json:"warnings,omitempty"`
}

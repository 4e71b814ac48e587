package repository

import (
	"github.com/diillson/aws-audit-reports/internal/domain/entity"
)

// ExportRepository writes finished reports. Each method returns the absolute path written.
type ExportRepository interface {
	ExportToCSV(report entity.Report, filename, outputDir string) (string, error)
	ExportToJSON(report entity.Report, filename, outputDir string) (string, error)
	ExportToPDF(report entity.Report, filename, outputDir string) (string, error)
}

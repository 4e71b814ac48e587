package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"github.com/rs/zerolog"
)

// AuditUseCase runs the S3 and IAM audits and exports their reports.
type AuditUseCase struct {
	storageRepo  repository.StorageRepository
	metricsRepo  repository.MetricsRepository
	identityRepo repository.IdentityRepository
	accountRepo  repository.AccountRepository
	exportRepo   repository.ExportRepository
	console      types.ConsoleInterface
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAuditUseCase creates a new audit use case.
func NewAuditUseCase(
	storageRepo repository.StorageRepository,
	metricsRepo repository.MetricsRepository,
	identityRepo repository.IdentityRepository,
	accountRepo repository.AccountRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	logger zerolog.Logger,
) *AuditUseCase {
	return &AuditUseCase{
		storageRepo:  storageRepo,
		metricsRepo:  metricsRepo,
		identityRepo: identityRepo,
		accountRepo:  accountRepo,
		exportRepo:   exportRepo,
		console:      console,
		logger:       logger,
		now:          time.Now,
	}
}

// ExportedReport is a built report plus the files it was written to.
type ExportedReport struct {
	Report entity.Report
	Files  []string
}

// RunAudits builds and exports each report in order. The first fatal error
// stops the run; reports already exported stay on disk.
func (uc *AuditUseCase) RunAudits(ctx context.Context, kinds []entity.ReportKind, args *types.CLIArgs) ([]ExportedReport, error) {
	accountID := uc.resolveAccount(ctx)

	var done []ExportedReport
	for _, kind := range kinds {
		uc.console.LogInfo("Preparing your %s report...", kind.Title())

		report, err := uc.BuildReport(ctx, kind, args.Options())
		if err != nil {
			return done, fmt.Errorf("%s report aborted: %w", kind, err)
		}
		report.AccountID = accountID

		files, err := uc.exportReport(report, reportBaseName(kind, args.ReportName, len(kinds)), args)
		if err != nil {
			return done, err
		}
		done = append(done, ExportedReport{Report: report, Files: files})
	}

	uc.displaySummary(done)
	return done, nil
}

// BuildReport runs one audit pipeline and returns the finished, unexported report.
func (uc *AuditUseCase) BuildReport(ctx context.Context, kind entity.ReportKind, opts types.AuditOptions) (entity.Report, error) {
	guard := newFactGuard(opts.Strict, uc.logger.With().Str("report", string(kind)).Logger())
	progress := func(total int) types.ProgressHandle {
		return uc.console.ProgressWithTotal(fmt.Sprintf("Collecting %s", kind.Title()), total)
	}

	var (
		result PipelineResult
		err    error
	)
	switch kind {
	case entity.ReportStorageUsage:
		classes := opts.StorageClasses
		if len(classes) == 0 {
			classes = entity.DefaultStorageClasses
		}
		audit := &storageUsageAudit{
			storage:        uc.storageRepo,
			metrics:        uc.metricsRepo,
			storageClasses: classes,
			window:         entity.TrailingWindow(uc.now(), opts.MetricWindow),
			guard:          guard,
		}
		p := audit.pipeline()
		p.Concurrency, p.Progress = opts.Concurrency, progress
		result, err = p.Run(ctx)
	case entity.ReportPublicExposure:
		audit := &publicExposureAudit{storage: uc.storageRepo, guard: guard}
		p := audit.pipeline()
		p.Concurrency, p.Progress = opts.Concurrency, progress
		result, err = p.Run(ctx)
	case entity.ReportIdentity:
		audit := &identityAudit{identity: uc.identityRepo, guard: guard}
		p := audit.pipeline()
		p.Concurrency, p.Progress = opts.Concurrency, progress
		result, err = p.Run(ctx)
	default:
		return entity.Report{}, fmt.Errorf("%w: %q", types.ErrUnknownReportType, kind)
	}
	if err != nil {
		return entity.Report{}, err
	}

	uc.logger.Debug().
		Str("report", string(kind)).
		Int("listed", result.Listed).
		Int("rows", len(result.Records)).
		Int("warnings", guard.warnings.Len()).
		Msg("report assembled")

	return entity.Report{
		Kind:        kind,
		GeneratedAt: uc.now().UTC(),
		Header:      result.Header,
		Records:     result.Records,
		Listed:      result.Listed,
		Warnings:    guard.warnings.List(),
	}, nil
}

// resolveAccount is best effort: the account only labels JSON and PDF output.
func (uc *AuditUseCase) resolveAccount(ctx context.Context) string {
	if uc.accountRepo == nil {
		return ""
	}
	accountID, err := uc.accountRepo.GetAccountID(ctx)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("could not resolve AWS account ID")
		return ""
	}
	return accountID
}

func reportBaseName(kind entity.ReportKind, reportName string, total int) string {
	switch {
	case reportName == "":
		return kind.DefaultFilename()
	case total > 1:
		return fmt.Sprintf("%s_%s", reportName, kind)
	default:
		return reportName
	}
}

func (uc *AuditUseCase) exportReport(report entity.Report, baseName string, args *types.CLIArgs) ([]string, error) {
	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"csv"}
	}

	var files []string
	for _, reportType := range reportTypes {
		var (
			path string
			err  error
		)
		switch strings.ToLower(reportType) {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, baseName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, baseName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, baseName, args.Dir)
		default:
			return files, fmt.Errorf("%w: %q", types.ErrUnknownReportType, reportType)
		}
		if err != nil {
			return files, fmt.Errorf("failed to export %s report to %s: %w", report.Kind, strings.ToUpper(reportType), err)
		}
		uc.console.LogSuccess("Successfully exported %s report to %s: %s", report.Kind, strings.ToUpper(reportType), path)
		files = append(files, path)
	}
	return files, nil
}

func (uc *AuditUseCase) displaySummary(reports []ExportedReport) {
	if len(reports) == 0 {
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Report")
	table.AddColumn("Listed")
	table.AddColumn("Rows")
	table.AddColumn("Warnings")
	table.AddColumn("Files")

	var warnings []entity.Warning
	for _, r := range reports {
		table.AddRow(
			r.Report.Kind.Title(),
			r.Report.Listed,
			len(r.Report.Records),
			len(r.Report.Warnings),
			strings.Join(r.Files, "\n"),
		)
		warnings = append(warnings, r.Report.Warnings...)
	}
	uc.console.Println()
	uc.console.Print(table.Render())
	uc.console.Println()

	if len(warnings) == 0 {
		return
	}

	uc.console.LogWarning("%d fact(s) could not be collected; affected cells read Unknown or Unavailable", len(warnings))
	wt := uc.console.CreateTable()
	wt.AddColumn("Resource")
	wt.AddColumn("Fact")
	wt.AddColumn("Action")
	wt.AddColumn("Reason")
	for _, w := range warnings {
		wt.AddRow(w.Resource, w.Fact, w.Action, w.Reason)
	}
	uc.console.Print(wt.Render())
	uc.console.Println()
}

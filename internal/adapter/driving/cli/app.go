package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/aws-audit-reports/internal/application/usecase"
	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"github.com/diillson/aws-audit-reports/pkg/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// AuditUseCaseBuilder connects to AWS with an explicit session and returns a
// ready audit use case. It runs only after the arguments are validated.
type AuditUseCaseBuilder func(ctx context.Context, session types.SessionConfig, logger zerolog.Logger) (*usecase.AuditUseCase, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd        *cobra.Command
	version        string
	configRepo     repository.ConfigRepository
	profileUseCase *usecase.ProfileUseCase
	buildAudit     AuditUseCaseBuilder
	console        types.ConsoleInterface
	logOutput      io.Writer
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
		console:    console,
		logOutput:  os.Stderr,
	}

	rootCmd := &cobra.Command{
		Use:           "aws-audit",
		Short:         "AWS S3 and IAM audit reports",
		Long:          "Collects S3 storage usage, publicly exposed buckets and IAM user permissions into CSV, JSON or PDF reports.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Audit Reports version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("profile", "p", "", "AWS profile to use (default: SDK credential chain)")
	flags.StringP("region", "r", "", "Default AWS region (default: profile region or us-east-1)")
	flags.String("endpoint", "", "Custom AWS endpoint URL, e.g. a local emulator")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.Int("concurrency", usecase.DefaultConcurrency, "Number of resources audited in parallel")
	flags.Bool("strict", false, "Abort on any fact collection failure instead of substituting or excluding")
	flags.String("log-level", "info", "Diagnostic log level: trace, debug, info, warn, error")
	flags.Int("metric-window", 3, "Trailing window in days for S3 storage metrics")
	flags.StringSlice("storage-classes", nil, "CloudWatch StorageType dimensions to report (default: all known classes)")

	rootCmd.AddCommand(
		app.auditCommand("storage", "Report S3 storage usage per bucket and storage class", entity.ReportStorageUsage),
		app.auditCommand("public", "Report S3 buckets without full Block Public Access", entity.ReportPublicExposure),
		app.auditCommand("identity", "Report IAM users with their groups, keys and policies", entity.ReportIdentity),
		app.auditCommand("all", "Run every audit into the same directory", entity.AllReportKinds...),
		&cobra.Command{
			Use:   "profiles",
			Short: "List the AWS profiles configured locally",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.profileUseCase.DisplayProfiles()
			},
		},
	)

	app.rootCmd = rootCmd
	return app
}

func (app *CLIApp) auditCommand(use, short string, kinds ...entity.ReportKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runAudit(cmd, kinds)
		},
	}
}

// Execute runs the CLI application.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetProfileUseCase sets the profile use case for the CLI app.
func (app *CLIApp) SetProfileUseCase(useCase *usecase.ProfileUseCase) {
	app.profileUseCase = useCase
}

// SetAuditUseCaseBuilder sets how the audit use case is created once the session is known.
func (app *CLIApp) SetAuditUseCaseBuilder(builder AuditUseCaseBuilder) {
	app.buildAudit = builder
}

// runAudit é o ponto de entrada dos comandos de auditoria.
func (app *CLIApp) runAudit(cmd *cobra.Command, kinds []entity.ReportKind) error {
	displayWelcomeBanner()
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cliArgs.LogLevel, app.logOutput)
	if err != nil {
		return err
	}

	if err := app.profileUseCase.ValidateProfile(cliArgs.Profile); err != nil {
		return err
	}

	ctx := cmd.Context()
	status := app.console.Status("Connecting to AWS...")
	auditUseCase, err := app.buildAudit(ctx, cliArgs.Session(), logger)
	status.Stop()
	if err != nil {
		return err
	}

	_, err = auditUseCase.RunAudits(ctx, kinds, cliArgs)
	return err
}

// parseArgs lê as flags e completa com o arquivo de configuração, quando houver.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	region, _ := flags.GetString("region")
	endpoint, _ := flags.GetString("endpoint")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	concurrency, _ := flags.GetInt("concurrency")
	strict, _ := flags.GetBool("strict")
	logLevel, _ := flags.GetString("log-level")
	metricWindow, _ := flags.GetInt("metric-window")
	storageClasses, _ := flags.GetStringSlice("storage-classes")

	args := &types.CLIArgs{
		ConfigFile:     configFile,
		Profile:        profile,
		Region:         region,
		Endpoint:       endpoint,
		ReportName:     reportName,
		ReportType:     reportType,
		Dir:            dir,
		Concurrency:    concurrency,
		Strict:         strict,
		LogLevel:       logLevel,
		MetricWindow:   metricWindow,
		StorageClasses: storageClasses,
	}

	if args.ConfigFile != "" {
		config, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(cmd, args, config)
	}

	if args.Concurrency <= 0 {
		return nil, fmt.Errorf("--concurrency must be positive, got %d", args.Concurrency)
	}
	for i, t := range args.ReportType {
		args.ReportType[i] = strings.ToLower(strings.TrimSpace(t))
	}

	// Set default directory to current working directory if not specified
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// mergeConfig preenche somente as flags que não foram passadas explicitamente.
func mergeConfig(cmd *cobra.Command, args *types.CLIArgs, config *types.Config) {
	changed := cmd.Flags().Changed

	if !changed("profile") && config.Profile != "" {
		args.Profile = config.Profile
	}
	if !changed("region") && config.Region != "" {
		args.Region = config.Region
	}
	if !changed("endpoint") && config.Endpoint != "" {
		args.Endpoint = config.Endpoint
	}
	if !changed("report-name") && config.ReportName != "" {
		args.ReportName = config.ReportName
	}
	if !changed("report-type") && len(config.ReportType) > 0 {
		args.ReportType = config.ReportType
	}
	if !changed("dir") && config.Dir != "" {
		args.Dir = config.Dir
	}
	if !changed("concurrency") && config.Concurrency > 0 {
		args.Concurrency = config.Concurrency
	}
	if !changed("strict") && config.Strict {
		args.Strict = true
	}
	if !changed("log-level") && config.LogLevel != "" {
		args.LogLevel = config.LogLevel
	}
	if !changed("metric-window") && config.MetricWindow > 0 {
		args.MetricWindow = config.MetricWindow
	}
	if !changed("storage-classes") && len(config.StorageClasses) > 0 {
		args.StorageClasses = config.StorageClasses
	}
}

// newLogger cria o logger de diagnóstico. Vazio significa info.
func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.Nop(), fmt.Errorf("%w: %q", types.ErrUnsupportedLogLevel, level)
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

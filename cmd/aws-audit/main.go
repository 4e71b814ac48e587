package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/aws-audit-reports/internal/adapter/driven/aws"
	"github.com/diillson/aws-audit-reports/internal/adapter/driven/config"
	"github.com/diillson/aws-audit-reports/internal/adapter/driven/export"
	"github.com/diillson/aws-audit-reports/internal/adapter/driving/cli"
	"github.com/diillson/aws-audit-reports/internal/application/usecase"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"github.com/diillson/aws-audit-reports/pkg/console"
	"github.com/diillson/aws-audit-reports/pkg/version"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	home, _ := os.UserHomeDir()

	// Inicializa os repositórios que não dependem da sessão AWS
	configRepo := config.NewConfigRepository()
	profileRepo := aws.NewProfileRepository(home)
	exportRepo := export.NewExportRepository()
	consoleImpl := console.NewConsole()

	app := cli.NewCLIApp(version.Version, configRepo, consoleImpl)
	app.SetProfileUseCase(usecase.NewProfileUseCase(profileRepo, consoleImpl))
	app.SetAuditUseCaseBuilder(func(ctx context.Context, session types.SessionConfig, logger zerolog.Logger) (*usecase.AuditUseCase, error) {
		factory, err := aws.NewClientFactory(ctx, session)
		if err != nil {
			return nil, err
		}
		return usecase.NewAuditUseCase(
			aws.NewS3Repository(factory.S3, factory.Region()),
			aws.NewMetricsRepository(factory.CloudWatch),
			aws.NewIAMRepository(factory.IAM()),
			aws.NewAccountRepository(factory.STS()),
			exportRepo,
			consoleImpl,
			logger,
		), nil
	})

	if err := app.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

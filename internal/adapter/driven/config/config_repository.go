package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-audit-reports/internal/domain/repository"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// SupportedReportTypes are the export formats accepted in report_type.
var SupportedReportTypes = []string{"csv", "json", "pdf"}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON e valida os valores.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &config, nil
}

func validate(config *types.Config) error {
	if config.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", config.Concurrency)
	}
	if config.MetricWindow < 0 {
		return fmt.Errorf("metric_window_days must not be negative, got %d", config.MetricWindow)
	}
	for i, t := range config.ReportType {
		t = strings.ToLower(strings.TrimSpace(t))
		if !isSupportedReportType(t) {
			return fmt.Errorf("%w: %q", types.ErrUnknownReportType, t)
		}
		config.ReportType[i] = t
	}
	return nil
}

func isSupportedReportType(t string) bool {
	for _, s := range SupportedReportTypes {
		if s == t {
			return true
		}
	}
	return false
}

package aws

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/diillson/aws-audit-reports/internal/domain/repository"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"gopkg.in/ini.v1"
)

// ProfileRepositoryImpl lê os perfis dos arquivos compartilhados do AWS CLI.
type ProfileRepositoryImpl struct {
	credentialsPath string
	configPath      string
}

// NewProfileRepository cria um repositório que lê ~/.aws/credentials e ~/.aws/config.
// An empty homeDir resolves the current user's home.
func NewProfileRepository(homeDir string) repository.ProfileRepository {
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}
	return &ProfileRepositoryImpl{
		credentialsPath: filepath.Join(homeDir, ".aws", "credentials"),
		configPath:      filepath.Join(homeDir, ".aws", "config"),
	}
}

// GetAWSProfiles returns the sorted, de-duplicated profile names from both files.
func (r *ProfileRepositoryImpl) GetAWSProfiles() ([]string, error) {
	profiles := make(map[string]bool)

	if err := r.collect(r.credentialsPath, false, profiles); err != nil {
		return nil, err
	}
	if err := r.collect(r.configPath, true, profiles); err != nil {
		return nil, err
	}

	if len(profiles) == 0 {
		return nil, types.ErrNoProfilesFound
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result, nil
}

func (r *ProfileRepositoryImpl) collect(path string, isConfig bool, into map[string]bool) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}
		if isConfig {
			// "sso-session" and "services" blocks are not profiles.
			if strings.HasPrefix(name, "sso-session ") || strings.HasPrefix(name, "services ") {
				continue
			}
			name = strings.TrimPrefix(name, "profile ")
		}
		into[strings.TrimSpace(name)] = true
	}
	return nil
}

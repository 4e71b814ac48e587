package usecase

import (
	"fmt"

	"github.com/diillson/aws-audit-reports/internal/domain/repository"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
)

// ProfileUseCase lists and validates the AWS CLI profiles configured locally.
type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	console     types.ConsoleInterface
}

// NewProfileUseCase creates a new profile use case.
func NewProfileUseCase(profileRepo repository.ProfileRepository, console types.ConsoleInterface) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo, console: console}
}

// ValidateProfile checks that profile exists in the shared AWS files. An empty
// profile defers to the SDK's default resolution and is always accepted.
func (uc *ProfileUseCase) ValidateProfile(profile string) error {
	if profile == "" {
		return nil
	}

	available, err := uc.profileRepo.GetAWSProfiles()
	if err != nil {
		return err
	}
	for _, p := range available {
		if p == profile {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", types.ErrProfileNotFound, profile)
}

// DisplayProfiles prints the available profiles as a table.
func (uc *ProfileUseCase) DisplayProfiles() error {
	available, err := uc.profileRepo.GetAWSProfiles()
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Profile")
	for i, p := range available {
		table.AddRow(i+1, p)
	}
	uc.console.Print(table.Render())
	uc.console.Println()
	uc.console.LogInfo("%d profile(s) found", len(available))
	return nil
}

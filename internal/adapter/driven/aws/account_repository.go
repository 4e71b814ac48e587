package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
)

// AccountRepositoryImpl resolve a conta AWS da sessão via STS.
type AccountRepositoryImpl struct {
	client STSAPI
}

// NewAccountRepository cria uma nova implementação do AccountRepository.
func NewAccountRepository(client STSAPI) repository.AccountRepository {
	return &AccountRepositoryImpl{client: client}
}

func (r *AccountRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	result, err := r.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %w", err)
	}
	return aws.ToString(result.Account), nil
}

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
)

// IAMRepositoryImpl implementa o IdentityRepository sobre o IAM.
type IAMRepositoryImpl struct {
	client IAMAPI
}

// NewIAMRepository cria uma nova implementação do IdentityRepository.
func NewIAMRepository(client IAMAPI) repository.IdentityRepository {
	return &IAMRepositoryImpl{client: client}
}

// ListUsers returns every IAM user, in listing order.
func (r *IAMRepositoryImpl) ListUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User

	paginator := iam.NewListUsersPaginator(r.client, &iam.ListUsersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing IAM users: %w", err)
		}
		for _, u := range page.Users {
			users = append(users, entity.User{
				UserName:   aws.ToString(u.UserName),
				ARN:        aws.ToString(u.Arn),
				CreateDate: aws.ToTime(u.CreateDate).UTC(),
			})
		}
	}

	return users, nil
}

func (r *IAMRepositoryImpl) ListGroupsForUser(ctx context.Context, userName string) entity.Fact[[]string] {
	var groups []string

	paginator := iam.NewListGroupsForUserPaginator(r.client, &iam.ListGroupsForUserInput{
		UserName: aws.String(userName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isNoSuchEntity(err) {
				return entity.Absent[[]string]()
			}
			return entity.Failed[[]string](fmt.Errorf("error listing groups of user %s: %w", userName, err))
		}
		for _, g := range page.Groups {
			groups = append(groups, aws.ToString(g.GroupName))
		}
	}

	return entity.Present(groups)
}

// HasConsoleAccess treats a user that has ever signed in with a password as having console access.
func (r *IAMRepositoryImpl) HasConsoleAccess(ctx context.Context, userName string) entity.Fact[bool] {
	out, err := r.client.GetUser(ctx, &iam.GetUserInput{UserName: aws.String(userName)})
	if err != nil {
		if isNoSuchEntity(err) {
			return entity.Absent[bool]()
		}
		return entity.Failed[bool](fmt.Errorf("error getting user %s: %w", userName, err))
	}
	return entity.Present(out.User != nil && out.User.PasswordLastUsed != nil)
}

func (r *IAMRepositoryImpl) ListAccessKeys(ctx context.Context, userName string) entity.Fact[[]entity.AccessKey] {
	var keys []entity.AccessKey

	paginator := iam.NewListAccessKeysPaginator(r.client, &iam.ListAccessKeysInput{
		UserName: aws.String(userName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isNoSuchEntity(err) {
				return entity.Absent[[]entity.AccessKey]()
			}
			return entity.Failed[[]entity.AccessKey](fmt.Errorf("error listing access keys of user %s: %w", userName, err))
		}
		for _, k := range page.AccessKeyMetadata {
			keys = append(keys, entity.AccessKey{
				ID:     aws.ToString(k.AccessKeyId),
				Status: string(k.Status),
			})
		}
	}

	return entity.Present(keys)
}

// ListUserPolicies returns inline policies first, then attached managed policies.
func (r *IAMRepositoryImpl) ListUserPolicies(ctx context.Context, userName string) entity.Fact[[]entity.Policy] {
	var policies []entity.Policy

	inline := iam.NewListUserPoliciesPaginator(r.client, &iam.ListUserPoliciesInput{
		UserName: aws.String(userName),
	})
	for inline.HasMorePages() {
		page, err := inline.NextPage(ctx)
		if err != nil {
			return r.policyFailure(userName, "inline", err)
		}
		for _, name := range page.PolicyNames {
			policies = append(policies, entity.Policy{Name: name, Kind: entity.PolicyInline})
		}
	}

	managed := iam.NewListAttachedUserPoliciesPaginator(r.client, &iam.ListAttachedUserPoliciesInput{
		UserName: aws.String(userName),
	})
	for managed.HasMorePages() {
		page, err := managed.NextPage(ctx)
		if err != nil {
			return r.policyFailure(userName, "managed", err)
		}
		for _, p := range page.AttachedPolicies {
			policies = append(policies, entity.Policy{Name: aws.ToString(p.PolicyName), Kind: entity.PolicyManaged})
		}
	}

	return entity.Present(policies)
}

func (r *IAMRepositoryImpl) policyFailure(userName, kind string, err error) entity.Fact[[]entity.Policy] {
	if isNoSuchEntity(err) {
		return entity.Absent[[]entity.Policy]()
	}
	return entity.Failed[[]entity.Policy](fmt.Errorf("error listing %s policies of user %s: %w", kind, userName, err))
}

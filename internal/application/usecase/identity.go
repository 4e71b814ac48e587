package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/domain/repository"
)

const (
	// MultiValueSeparator joins multi-valued identity columns.
	MultiValueSeparator = ", "
	// NoneText stands in for an empty multi-valued column.
	NoneText = "None"
)

// joinOrNone renders an empty list as the sentinel so every multi-valued column reads the same.
func joinOrNone(values []string) string {
	if len(values) == 0 {
		return NoneText
	}
	return strings.Join(values, MultiValueSeparator)
}

func mapValues[T any](items []T, fn func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func identityColumn(name string, render func(entity.UserFacts) entity.Cell) entity.Column[entity.UserFacts] {
	return entity.Column[entity.UserFacts]{Name: name, Absent: NoneText, Value: render}
}

// IdentitySchema declares the IAM user columns.
func IdentitySchema() entity.Schema[entity.UserFacts] {
	groups := func(f entity.UserFacts) entity.Cell { return entity.CellOf(f.Groups, joinOrNone) }

	return entity.NewSchema(
		identityColumn("UserName", func(f entity.UserFacts) entity.Cell { return entity.TextCell(f.User.UserName) }),
		identityColumn("GroupName(s)", groups),
		// Usuários IAM pertencem a grupos, não a roles; a coluna repete os grupos.
		identityColumn("RoleName", groups),
		entity.Column[entity.UserFacts]{
			Name:   "ConsoleAccess",
			Absent: "No",
			Value: func(f entity.UserFacts) entity.Cell {
				return entity.CellOf(f.ConsoleAccess, yesNo)
			},
		},
		identityColumn("AccessKeyID(s)", func(f entity.UserFacts) entity.Cell {
			return entity.CellOf(f.AccessKeys, func(keys []entity.AccessKey) string {
				return joinOrNone(mapValues(keys, func(k entity.AccessKey) string {
					return fmt.Sprintf("%s (%s)", k.ID, k.Status)
				}))
			})
		}),
		identityColumn("AccessKeyStatus", func(f entity.UserFacts) entity.Cell {
			return entity.CellOf(f.AccessKeys, func(keys []entity.AccessKey) string {
				return joinOrNone(mapValues(keys, func(k entity.AccessKey) string { return k.Status }))
			})
		}),
		identityColumn("PermissionName(s)", func(f entity.UserFacts) entity.Cell {
			return entity.CellOf(f.Policies, func(ps []entity.Policy) string {
				return joinOrNone(mapValues(ps, func(p entity.Policy) string { return p.Name }))
			})
		}),
		identityColumn("PermissionType(s)", func(f entity.UserFacts) entity.Cell {
			return entity.CellOf(f.Policies, func(ps []entity.Policy) string {
				return joinOrNone(mapValues(ps, func(p entity.Policy) string { return string(p.Kind) }))
			})
		}),
	)
}

// identityAudit coleta grupos, acesso ao console, chaves e políticas de cada usuário.
// Any unexpected failure aborts: a partial identity report is not trustworthy.
type identityAudit struct {
	identity repository.IdentityRepository
	guard    *factGuard
}

func (a *identityAudit) pipeline() Pipeline[entity.User, entity.UserFacts] {
	return Pipeline[entity.User, entity.UserFacts]{
		Resources: "IAM users",
		List:      a.identity.ListUsers,
		Collect:   a.collect,
		Schema:    IdentitySchema(),
	}
}

func (a *identityAudit) collect(ctx context.Context, user entity.User) (entity.UserFacts, error) {
	name := user.UserName
	facts := entity.UserFacts{User: user}

	facts.Groups = a.identity.ListGroupsForUser(ctx, name)
	facts.ConsoleAccess = a.identity.HasConsoleAccess(ctx, name)
	facts.AccessKeys = a.identity.ListAccessKeys(ctx, name)
	facts.Policies = a.identity.ListUserPolicies(ctx, name)

	checks := []error{
		checkFact(a.guard, name, "Groups", facts.Groups, Abort),
		checkFact(a.guard, name, "ConsoleAccess", facts.ConsoleAccess, Abort),
		checkFact(a.guard, name, "AccessKeys", facts.AccessKeys, Abort),
		checkFact(a.guard, name, "Policies", facts.Policies, Abort),
	}
	for _, err := range checks {
		if err != nil {
			return facts, err
		}
	}
	return facts, nil
}

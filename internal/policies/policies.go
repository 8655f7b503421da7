// Package policies defines the application's policy registry. The registry is
// built once at startup; nothing mutates it afterwards.
package policies

import (
	"context"

	"newsroom/internal/domain"
)

// Default returns the built-in registry. Edit and delete on articles are
// satisfiable either by a grant or by owning the resolved article.
func Default() domain.PolicyRegistry {
	return domain.PolicyRegistry{
		domain.EntityArticle: domain.Policy{
			domain.ActionView:   RequireGrant("article:view"),
			domain.ActionCreate: RequireGrant("article:create"),
			domain.ActionEdit:   AnyOf(RequireGrant("article:edit"), ArticleOwner),
			domain.ActionDelete: AnyOf(RequireGrant("article:delete"), ArticleOwner),
		},
		domain.EntityRole: domain.Policy{
			domain.ActionView:   RequireGrant("role:view"),
			domain.ActionManage: RequireGrant("role:manage"),
		},
		domain.EntityUser: domain.Policy{
			domain.ActionView: RequireGrant("user:view"),
		},
	}
}

// RequireGrant builds a pure permission predicate; it ignores the request
// context.
func RequireGrant(name string) domain.Predicate {
	return func(_ context.Context, perms domain.PermissionSet, _ *domain.RequestContext) (bool, error) {
		return perms.Has(name), nil
	}
}

// AnyOf allows when any of the given predicates allows. Predicate faults
// propagate immediately.
func AnyOf(predicates ...domain.Predicate) domain.Predicate {
	return func(ctx context.Context, perms domain.PermissionSet, rc *domain.RequestContext) (bool, error) {
		for _, predicate := range predicates {
			allowed, err := predicate(ctx, perms, rc)
			if err != nil {
				return false, err
			}
			if allowed {
				return true, nil
			}
		}
		return false, nil
	}
}

// ArticleOwner allows when the resolved article belongs to the caller. Without
// a resolved article there is nothing to own, so it denies.
func ArticleOwner(_ context.Context, perms domain.PermissionSet, rc *domain.RequestContext) (bool, error) {
	article, ok := rc.Article()
	if !ok || article == nil {
		return false, nil
	}
	return article.AuthorID == perms.UserID, nil
}

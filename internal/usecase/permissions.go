package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"newsroom/internal/domain"
)

// RolePermissionResolver flattens a caller's role grants into a PermissionSet.
// Roles preloaded on the user are used as-is; otherwise they are fetched from
// the role repository. Cache errors are treated as misses.
type RolePermissionResolver struct {
	Roles RoleRepository
	Cache PermissionCache
	TTL   time.Duration
}

func (r *RolePermissionResolver) PermissionsFor(ctx context.Context, user *domain.User) (domain.PermissionSet, error) {
	if user == nil {
		return domain.PermissionSet{}, domain.ErrUnauthorized
	}
	if r.Cache != nil {
		if grants, ok, err := r.Cache.Get(ctx, user.ID); err == nil && ok {
			return domain.NewPermissionSet(user.ID, grants...), nil
		}
	}

	roles := user.Roles
	if len(roles) == 0 && r.Roles != nil {
		fetched, err := r.Roles.ListByUser(ctx, user.ID)
		if err != nil {
			return domain.PermissionSet{}, fmt.Errorf("list roles for user %d: %w", user.ID, err)
		}
		roles = fetched
	}

	grants := flattenGrants(roles)
	if r.Cache != nil {
		_ = r.Cache.Put(ctx, user.ID, grants, r.TTL)
	}
	return domain.NewPermissionSet(user.ID, grants...), nil
}

func flattenGrants(roles []domain.Role) []string {
	seen := make(map[string]struct{})
	for _, role := range roles {
		for _, grant := range role.Permissions {
			if grant == "" {
				continue
			}
			seen[grant] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for grant := range seen {
		out = append(out, grant)
	}
	sort.Strings(out)
	return out
}

package usecase

import (
	"context"
	"fmt"

	"newsroom/internal/domain"
)

// PermissionFunc resolves the caller's permission set on demand. Decide calls
// it only after both registry lookups succeed, so a registry gap never costs a
// permission fetch.
type PermissionFunc func(ctx context.Context) (domain.PermissionSet, error)

// AuthorizationEngine makes allow/deny decisions against a read-only policy
// registry. Registry gaps surface as distinct outcomes, not errors: an error
// return means a predicate or the permission source itself faulted.
type AuthorizationEngine struct {
	Registry domain.PolicyRegistry
}

func NewAuthorizationEngine(registry domain.PolicyRegistry) *AuthorizationEngine {
	return &AuthorizationEngine{Registry: registry}
}

// Authorize decides whether the given permission set may perform action on
// entity. The request context is optional and is handed through to the
// predicate untouched.
func (e *AuthorizationEngine) Authorize(ctx context.Context, action domain.Action, entity domain.Entity, perms domain.PermissionSet, rc *domain.RequestContext) (domain.Decision, error) {
	return e.Decide(ctx, action, entity, func(context.Context) (domain.PermissionSet, error) {
		return perms, nil
	}, rc)
}

// Decide is Authorize with a lazily resolved permission set.
func (e *AuthorizationEngine) Decide(ctx context.Context, action domain.Action, entity domain.Entity, resolve PermissionFunc, rc *domain.RequestContext) (domain.Decision, error) {
	policy, ok := e.Registry.Lookup(entity)
	if !ok {
		return domain.DecisionPolicyNotFound, nil
	}
	predicate, ok := policy.Lookup(action)
	if !ok {
		return domain.DecisionActionNotFound, nil
	}
	perms, err := resolve(ctx)
	if err != nil {
		return domain.DecisionDenied, fmt.Errorf("resolve permissions for %s.%s: %w", entity, action, err)
	}
	allowed, err := predicate(ctx, perms, rc)
	if err != nil {
		return domain.DecisionDenied, fmt.Errorf("evaluate %s.%s: %w", entity, action, err)
	}
	if allowed {
		return domain.DecisionAllowed, nil
	}
	return domain.DecisionDenied, nil
}

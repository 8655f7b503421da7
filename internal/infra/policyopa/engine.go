// Package policyopa backs policy predicates with a rego bundle. The bundle
// extends the built-in registry: an entity/action pair is allowed when either
// the code predicate or the bundle's allow rule says so. Context-aware rules
// (ownership) stay in Go; the bundle only sees the caller and its grants.
package policyopa

import (
	"context"
	"errors"

	"newsroom/internal/domain"

	"github.com/open-policy-agent/opa/rego"
)

const defaultQuery = "data.newsroom.authz.allow"

type Engine struct {
	query rego.PreparedEvalQuery
}

func NewEngineFromBundlePath(ctx context.Context, bundlePath string) (*Engine, error) {
	if bundlePath == "" {
		return nil, errors.New("bundle path is required")
	}
	r := rego.New(
		rego.Query(defaultQuery),
		rego.StrictBuiltinErrors(true),
		rego.Load([]string{bundlePath}, nil),
	)
	prepared, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{query: prepared}, nil
}

// Predicate evaluates the bundle's allow rule for one entity/action pair. An
// undefined result is a plain deny; evaluation errors propagate as predicate
// faults.
func (e *Engine) Predicate(entity domain.Entity, action domain.Action) domain.Predicate {
	return func(ctx context.Context, perms domain.PermissionSet, _ *domain.RequestContext) (bool, error) {
		input := map[string]any{
			"entity":      string(entity),
			"action":      string(action),
			"subject":     perms.UserID,
			"permissions": perms.Grants(),
		}
		results, err := e.query.Eval(ctx, rego.EvalInput(input))
		if err != nil {
			return false, err
		}
		if len(results) == 0 || len(results[0].Expressions) == 0 {
			return false, nil
		}
		allowed, ok := results[0].Expressions[0].Value.(bool)
		return ok && allowed, nil
	}
}

// Extend wraps every predicate in the registry so the bundle can grant what
// the code predicate alone would not.
func (e *Engine) Extend(registry domain.PolicyRegistry) domain.PolicyRegistry {
	out := make(domain.PolicyRegistry, len(registry))
	for entity, policy := range registry {
		extended := make(domain.Policy, len(policy))
		for action, predicate := range policy {
			extended[action] = orPredicate(predicate, e.Predicate(entity, action))
		}
		out[entity] = extended
	}
	return out
}

func orPredicate(first, second domain.Predicate) domain.Predicate {
	return func(ctx context.Context, perms domain.PermissionSet, rc *domain.RequestContext) (bool, error) {
		allowed, err := first(ctx, perms, rc)
		if err != nil || allowed {
			return allowed, err
		}
		return second(ctx, perms, rc)
	}
}

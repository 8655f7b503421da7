package usecase

import (
	"context"
	"errors"
	"testing"

	"newsroom/internal/domain"
)

func allowAll(_ context.Context, _ domain.PermissionSet, _ *domain.RequestContext) (bool, error) {
	return true, nil
}

func denyAll(_ context.Context, _ domain.PermissionSet, _ *domain.RequestContext) (bool, error) {
	return false, nil
}

func testRegistry() domain.PolicyRegistry {
	return domain.PolicyRegistry{
		domain.EntityArticle: domain.Policy{
			domain.ActionView: allowAll,
			domain.ActionEdit: denyAll,
		},
	}
}

func TestAuthorize_Allowed(t *testing.T) {
	engine := NewAuthorizationEngine(testRegistry())
	decision, err := engine.Authorize(context.Background(), domain.ActionView, domain.EntityArticle, domain.NewPermissionSet(1), nil)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if decision != domain.DecisionAllowed {
		t.Fatalf("expected allowed, got %s", decision)
	}
}

func TestAuthorize_Denied(t *testing.T) {
	engine := NewAuthorizationEngine(testRegistry())
	decision, err := engine.Authorize(context.Background(), domain.ActionEdit, domain.EntityArticle, domain.NewPermissionSet(1), nil)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if decision != domain.DecisionDenied {
		t.Fatalf("expected denied, got %s", decision)
	}
}

func TestAuthorize_PolicyNotFound(t *testing.T) {
	engine := NewAuthorizationEngine(testRegistry())
	decision, err := engine.Authorize(context.Background(), domain.ActionEdit, domain.Entity("widget"), domain.NewPermissionSet(1), nil)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if decision != domain.DecisionPolicyNotFound {
		t.Fatalf("expected policy_not_found, got %s", decision)
	}
}

func TestAuthorize_ActionNotFound(t *testing.T) {
	engine := NewAuthorizationEngine(testRegistry())
	decision, err := engine.Authorize(context.Background(), domain.Action("publish"), domain.EntityArticle, domain.NewPermissionSet(1), nil)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if decision != domain.DecisionActionNotFound {
		t.Fatalf("expected action_not_found, got %s", decision)
	}
}

func TestAuthorize_Deterministic(t *testing.T) {
	perms := domain.NewPermissionSet(7, "article:view")
	registry := domain.PolicyRegistry{
		domain.EntityArticle: domain.Policy{
			domain.ActionView: func(_ context.Context, p domain.PermissionSet, _ *domain.RequestContext) (bool, error) {
				return p.Has("article:view"), nil
			},
		},
	}
	engine := NewAuthorizationEngine(registry)
	for i := 0; i < 10; i++ {
		decision, err := engine.Authorize(context.Background(), domain.ActionView, domain.EntityArticle, perms, nil)
		if err != nil {
			t.Fatalf("authorize: %v", err)
		}
		if decision != domain.DecisionAllowed {
			t.Fatalf("iteration %d: expected allowed, got %s", i, decision)
		}
	}
}

func TestAuthorize_PredicateFault(t *testing.T) {
	fault := errors.New("boom")
	registry := domain.PolicyRegistry{
		domain.EntityArticle: domain.Policy{
			domain.ActionView: func(_ context.Context, _ domain.PermissionSet, _ *domain.RequestContext) (bool, error) {
				return false, fault
			},
		},
	}
	engine := NewAuthorizationEngine(registry)
	_, err := engine.Authorize(context.Background(), domain.ActionView, domain.EntityArticle, domain.NewPermissionSet(1), nil)
	if !errors.Is(err, fault) {
		t.Fatalf("expected predicate fault, got %v", err)
	}
}

func TestDecide_RegistryMissSkipsPermissionResolve(t *testing.T) {
	engine := NewAuthorizationEngine(testRegistry())
	calls := 0
	resolve := func(context.Context) (domain.PermissionSet, error) {
		calls++
		return domain.NewPermissionSet(1), nil
	}

	decision, err := engine.Decide(context.Background(), domain.ActionEdit, domain.Entity("widget"), resolve, nil)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decision != domain.DecisionPolicyNotFound {
		t.Fatalf("expected policy_not_found, got %s", decision)
	}
	decision, err = engine.Decide(context.Background(), domain.Action("publish"), domain.EntityArticle, resolve, nil)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decision != domain.DecisionActionNotFound {
		t.Fatalf("expected action_not_found, got %s", decision)
	}
	if calls != 0 {
		t.Fatalf("expected no permission resolution on registry miss, got %d calls", calls)
	}
}

func TestDecide_PermissionResolveFault(t *testing.T) {
	engine := NewAuthorizationEngine(testRegistry())
	fault := errors.New("permission store down")
	_, err := engine.Decide(context.Background(), domain.ActionView, domain.EntityArticle, func(context.Context) (domain.PermissionSet, error) {
		return domain.PermissionSet{}, fault
	}, nil)
	if !errors.Is(err, fault) {
		t.Fatalf("expected resolve fault, got %v", err)
	}
}

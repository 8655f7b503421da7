package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"newsroom/internal/domain"
	"newsroom/internal/usecase"
)

type countingSource struct {
	perms domain.PermissionSet
	err   error
	calls int
}

func (s *countingSource) PermissionsFor(_ context.Context, _ *domain.User) (domain.PermissionSet, error) {
	s.calls++
	return s.perms, s.err
}

func grantPredicate(name string) domain.Predicate {
	return func(_ context.Context, perms domain.PermissionSet, _ *domain.RequestContext) (bool, error) {
		return perms.Has(name), nil
	}
}

func stageFixture(registry domain.PolicyRegistry, source PermissionSource) Stage {
	return Can(domain.ActionEdit, domain.EntityArticle, usecase.NewAuthorizationEngine(registry), source)
}

func editRegistry() domain.PolicyRegistry {
	return domain.PolicyRegistry{
		domain.EntityArticle: domain.Policy{
			domain.ActionEdit: grantPredicate("article:edit"),
		},
	}
}

func authedRequest() *Request {
	req := NewRequest(http.MethodPut, "/articles/42", "token", map[string]string{"article_id": "42"})
	req.Identity = &domain.User{ID: 1, Username: "ada"}
	return req
}

func TestCan_Allowed(t *testing.T) {
	source := &countingSource{perms: domain.NewPermissionSet(1, "article:edit")}
	stage := stageFixture(editRegistry(), source)
	if _, stop := stage(context.Background(), authedRequest(), domain.NewRequestContext()).Terminated(); stop {
		t.Fatalf("expected allow to continue")
	}
	if source.calls != 1 {
		t.Fatalf("expected one permission lookup, got %d", source.calls)
	}
}

func TestCan_DeniedIs403(t *testing.T) {
	source := &countingSource{perms: domain.NewPermissionSet(1, "article:view")}
	stage := stageFixture(editRegistry(), source)
	resp, stop := stage(context.Background(), authedRequest(), domain.NewRequestContext()).Terminated()
	if !stop {
		t.Fatalf("expected 403")
	}
	if resp.Status != http.StatusForbidden || resp.Message != MsgUnauthorized {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCan_PolicyNotFoundIs500AndSkipsPermissionSource(t *testing.T) {
	source := &countingSource{perms: domain.NewPermissionSet(1, "article:edit")}
	stage := Can(domain.ActionEdit, domain.Entity("widget"), usecase.NewAuthorizationEngine(editRegistry()), source)
	resp, stop := stage(context.Background(), authedRequest(), domain.NewRequestContext()).Terminated()
	if !stop {
		t.Fatalf("expected 500")
	}
	if resp.Status != http.StatusInternalServerError || resp.Message != MsgInternal {
		t.Fatalf("unexpected response %+v", resp)
	}
	if source.calls != 0 {
		t.Fatalf("registry miss must not consult the permission source, got %d calls", source.calls)
	}
}

func TestCan_ActionNotFoundIs500(t *testing.T) {
	source := &countingSource{perms: domain.NewPermissionSet(1)}
	stage := Can(domain.Action("publish"), domain.EntityArticle, usecase.NewAuthorizationEngine(editRegistry()), source)
	resp, stop := stage(context.Background(), authedRequest(), domain.NewRequestContext()).Terminated()
	if !stop || resp.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %+v stop=%v", resp, stop)
	}
	if source.calls != 0 {
		t.Fatalf("registry miss must not consult the permission source, got %d calls", source.calls)
	}
}

func TestCan_PermissionSourceFaultIs500(t *testing.T) {
	source := &countingSource{err: errors.New("permission store down")}
	stage := stageFixture(editRegistry(), source)
	resp, stop := stage(context.Background(), authedRequest(), domain.NewRequestContext()).Terminated()
	if !stop || resp.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %+v stop=%v", resp, stop)
	}
}

func TestCan_MissingIdentityIs500(t *testing.T) {
	source := &countingSource{perms: domain.NewPermissionSet(1, "article:edit")}
	stage := stageFixture(editRegistry(), source)
	req := NewRequest(http.MethodPut, "/articles/42", "token", nil)
	resp, stop := stage(context.Background(), req, domain.NewRequestContext()).Terminated()
	if !stop || resp.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 without identity, got %+v stop=%v", resp, stop)
	}
	if source.calls != 0 {
		t.Fatalf("missing identity must not consult the permission source")
	}
}

func TestCan_OwnershipPredicateSeesContext(t *testing.T) {
	registry := domain.PolicyRegistry{
		domain.EntityArticle: domain.Policy{
			domain.ActionEdit: func(_ context.Context, perms domain.PermissionSet, rc *domain.RequestContext) (bool, error) {
				article, ok := rc.Article()
				if !ok {
					return false, nil
				}
				return article.AuthorID == perms.UserID, nil
			},
		},
	}
	source := &countingSource{perms: domain.NewPermissionSet(1)}
	stage := stageFixture(registry, source)

	rc := domain.NewRequestContext()
	if err := rc.Set(domain.ContextKeyArticle, &domain.Article{ID: 42, AuthorID: 1}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, stop := stage(context.Background(), authedRequest(), rc).Terminated(); stop {
		t.Fatalf("expected owner to be allowed")
	}

	rc = domain.NewRequestContext()
	if err := rc.Set(domain.ContextKeyArticle, &domain.Article{ID: 42, AuthorID: 2}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	resp, stop := stage(context.Background(), authedRequest(), rc).Terminated()
	if !stop || resp.Status != http.StatusForbidden {
		t.Fatalf("expected non-owner 403, got %+v stop=%v", resp, stop)
	}
}

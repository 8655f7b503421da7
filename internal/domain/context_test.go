package domain

import (
	"errors"
	"testing"
)

func TestRequestContext_SetRejectsDuplicateKey(t *testing.T) {
	rc := NewRequestContext()
	if err := rc.Set(ContextKeyArticle, &Article{ID: 1}); err != nil {
		t.Fatalf("first set: %v", err)
	}
	err := rc.Set(ContextKeyArticle, &Article{ID: 2})
	if !errors.Is(err, ErrDuplicateContextKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	article, ok := rc.Article()
	if !ok || article.ID != 1 {
		t.Fatalf("expected first value to survive, got %+v ok=%v", article, ok)
	}
}

func TestRequestContext_TypedAccessors(t *testing.T) {
	rc := NewRequestContext()
	if _, ok := rc.Article(); ok {
		t.Fatalf("expected empty context to miss")
	}
	if err := rc.Set(ContextKeyRole, &Role{ID: 4, Name: "editor"}); err != nil {
		t.Fatalf("set role: %v", err)
	}
	if err := rc.Set(ContextKeyUser, &User{ID: 8, Username: "ada"}); err != nil {
		t.Fatalf("set user: %v", err)
	}
	role, ok := rc.Role()
	if !ok || role.Name != "editor" {
		t.Fatalf("expected editor role, got %+v ok=%v", role, ok)
	}
	user, ok := rc.User()
	if !ok || user.Username != "ada" {
		t.Fatalf("expected user ada, got %+v ok=%v", user, ok)
	}
}

func TestRequestContext_NilReceiverGet(t *testing.T) {
	var rc *RequestContext
	if _, ok := rc.Get(ContextKeyArticle); ok {
		t.Fatalf("expected nil context to miss")
	}
	if _, ok := rc.Article(); ok {
		t.Fatalf("expected nil context article to miss")
	}
}

package pipeline

import (
	"context"
	"net/http"
	"testing"

	"newsroom/internal/domain"
)

func TestPipeline_RunsStagesInOrder(t *testing.T) {
	var order []string
	record := func(name string) Stage {
		return func(_ context.Context, _ *Request, _ *domain.RequestContext) Result {
			order = append(order, name)
			return Continue()
		}
	}
	pl := New(record("first"), record("second"), record("third"))
	req := NewRequest(http.MethodGet, "/articles", "", nil)
	_, resp := pl.Run(context.Background(), req)
	if resp != nil {
		t.Fatalf("expected clean run, got %+v", resp)
	}
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("unexpected stage order: %v", order)
	}
}

func TestPipeline_ShortCircuitsOnTerminate(t *testing.T) {
	ran := false
	pl := New(
		func(_ context.Context, _ *Request, _ *domain.RequestContext) Result {
			return TerminateUnauthenticated()
		},
		func(_ context.Context, _ *Request, _ *domain.RequestContext) Result {
			ran = true
			return Continue()
		},
	)
	_, resp := pl.Run(context.Background(), NewRequest(http.MethodGet, "/articles", "", nil))
	if resp == nil {
		t.Fatalf("expected termination")
	}
	if resp.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Status)
	}
	if resp.Message != MsgUnauthenticated {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if ran {
		t.Fatalf("stage after termination must not run")
	}
}

func TestPipeline_ContextVisibleToLaterStages(t *testing.T) {
	pl := New(
		func(_ context.Context, _ *Request, rc *domain.RequestContext) Result {
			if err := rc.Set(domain.ContextKeyArticle, &domain.Article{ID: 42}); err != nil {
				t.Fatalf("set: %v", err)
			}
			return Continue()
		},
		func(_ context.Context, _ *Request, rc *domain.RequestContext) Result {
			article, ok := rc.Article()
			if !ok || article.ID != 42 {
				t.Fatalf("expected article 42 visible, got %+v ok=%v", article, ok)
			}
			return Continue()
		},
	)
	if _, resp := pl.Run(context.Background(), NewRequest(http.MethodGet, "/articles/42", "", nil)); resp != nil {
		t.Fatalf("expected clean run, got %+v", resp)
	}
}

func TestTerminateNotFound_Message(t *testing.T) {
	resp, stop := TerminateNotFound(domain.EntityArticle).Terminated()
	if !stop {
		t.Fatalf("expected termination")
	}
	if resp.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Status)
	}
	if resp.Message != "The article does not exist." {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

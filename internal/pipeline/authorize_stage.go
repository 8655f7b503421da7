package pipeline

import (
	"context"
	"log"

	"newsroom/internal/domain"
	"newsroom/internal/usecase"
)

// PermissionSource resolves the caller's permission set; the lookup may hit
// storage or a cache.
type PermissionSource interface {
	PermissionsFor(ctx context.Context, user *domain.User) (domain.PermissionSet, error)
}

// Can builds the authorization stage for a fixed action/entity pair. The
// permission source is consulted lazily, so a registry gap is reported before
// any permission lookup happens. Registry gaps and faults both collapse into a
// generic 500 for the client; the distinction is kept in the server log.
func Can(action domain.Action, entity domain.Entity, engine *usecase.AuthorizationEngine, source PermissionSource) Stage {
	return func(ctx context.Context, req *Request, rc *domain.RequestContext) Result {
		caller := req.Identity
		if caller == nil {
			log.Printf("authorize %s.%s: no caller identity on request", entity, action)
			return TerminateInternal()
		}
		decision, err := engine.Decide(ctx, action, entity, func(ctx context.Context) (domain.PermissionSet, error) {
			return source.PermissionsFor(ctx, caller)
		}, rc)
		if err != nil {
			log.Printf("authorize %s.%s for user %d: %v", entity, action, caller.ID, err)
			return TerminateInternal()
		}
		switch decision {
		case domain.DecisionAllowed:
			return Continue()
		case domain.DecisionDenied:
			return TerminateUnauthorized()
		case domain.DecisionPolicyNotFound:
			log.Printf("authorize %s.%s: no policy registered for entity %q", entity, action, entity)
			return TerminateInternal()
		case domain.DecisionActionNotFound:
			log.Printf("authorize %s.%s: action %q not registered for entity %q", entity, action, action, entity)
			return TerminateInternal()
		default:
			log.Printf("authorize %s.%s: unexpected decision %v", entity, action, decision)
			return TerminateInternal()
		}
	}
}

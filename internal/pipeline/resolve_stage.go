package pipeline

import (
	"context"
	"log"

	"newsroom/internal/domain"
)

// LookupFunc loads one entity by its raw path-parameter value. Implementations
// own id parsing; a malformed id and an absent record are the same failure to
// the client.
type LookupFunc func(ctx context.Context, id string) (any, error)

// Resolve builds a stage that loads the entity named by the given path
// parameter and stores it under key in the request context. Any lookup failure
// terminates with the entity-specific 404 and leaves the context untouched.
func Resolve(entity domain.Entity, param string, key domain.ContextKey, lookup LookupFunc) Stage {
	return func(ctx context.Context, req *Request, rc *domain.RequestContext) Result {
		id := req.Param(param)
		if id == "" {
			return TerminateNotFound(entity)
		}
		value, err := lookup(ctx, id)
		if err != nil {
			return TerminateNotFound(entity)
		}
		if err := rc.Set(key, value); err != nil {
			log.Printf("resolve %s: %v", entity, err)
			return TerminateInternal()
		}
		return Continue()
	}
}

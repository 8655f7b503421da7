package pipeline

import (
	"context"

	"newsroom/internal/domain"
)

// TokenDecoder turns a raw request token into the username it was issued for.
type TokenDecoder interface {
	Decode(raw string) (string, error)
}

type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Authenticate builds the stage that gates every non-public route. Paths on
// the allow-list are matched exactly, never by pattern, and continue without
// touching the token. Everything else must decode to a known user; decode
// failures and unknown users collapse into one 401 so the client cannot tell
// which half failed.
func Authenticate(tokens TokenDecoder, users UserFinder, publicPaths []string) Stage {
	public := make(map[string]struct{}, len(publicPaths))
	for _, path := range publicPaths {
		public[path] = struct{}{}
	}
	return func(ctx context.Context, req *Request, _ *domain.RequestContext) Result {
		if _, ok := public[req.Path]; ok {
			return Continue()
		}
		username, err := tokens.Decode(req.Token)
		if err != nil {
			return TerminateUnauthenticated()
		}
		user, err := users.FindByUsername(ctx, username)
		if err != nil || user == nil {
			return TerminateUnauthenticated()
		}
		req.Identity = user
		return Continue()
	}
}

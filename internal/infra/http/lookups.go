package http

import (
	"context"
	"strconv"

	"newsroom/internal/domain"
	"newsroom/internal/pipeline"
)

// lookupByID adapts a numeric-id repository lookup to the resolution stage
// contract. A malformed id reads as not-found; the client never learns the
// difference.
func lookupByID(find func(ctx context.Context, id uint) (any, error)) pipeline.LookupFunc {
	return func(ctx context.Context, raw string) (any, error) {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		return find(ctx, uint(id))
	}
}

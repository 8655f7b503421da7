package domain

import "fmt"

type ContextKey string

const (
	ContextKeyArticle ContextKey = "article"
	ContextKeyRole    ContextKey = "role"
	ContextKeyUser    ContextKey = "user"
)

// RequestContext is the per-request bag of resolved entities. Pipeline stages
// add entries in order; keys are write-once and never removed while the
// request is in flight.
type RequestContext struct {
	values map[ContextKey]any
}

func NewRequestContext() *RequestContext {
	return &RequestContext{values: make(map[ContextKey]any)}
}

func (rc *RequestContext) Set(key ContextKey, value any) error {
	if _, ok := rc.values[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateContextKey, key)
	}
	rc.values[key] = value
	return nil
}

func (rc *RequestContext) Get(key ContextKey) (any, bool) {
	if rc == nil {
		return nil, false
	}
	value, ok := rc.values[key]
	return value, ok
}

func (rc *RequestContext) Article() (*Article, bool) {
	value, ok := rc.Get(ContextKeyArticle)
	if !ok {
		return nil, false
	}
	article, ok := value.(*Article)
	return article, ok
}

func (rc *RequestContext) Role() (*Role, bool) {
	value, ok := rc.Get(ContextKeyRole)
	if !ok {
		return nil, false
	}
	role, ok := value.(*Role)
	return role, ok
}

func (rc *RequestContext) User() (*User, bool) {
	value, ok := rc.Get(ContextKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := value.(*User)
	return user, ok
}

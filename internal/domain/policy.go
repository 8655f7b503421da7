package domain

import "context"

type Entity string

const (
	EntityArticle Entity = "article"
	EntityRole    Entity = "role"
	EntityUser    Entity = "user"
)

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// Predicate decides whether a permission set satisfies one action. The request
// context is optional; context-aware rules (ownership checks) read resolved
// entities from it, pure permission rules ignore it.
type Predicate func(ctx context.Context, perms PermissionSet, rc *RequestContext) (bool, error)

type Policy map[Action]Predicate

func (p Policy) Lookup(action Action) (Predicate, bool) {
	predicate, ok := p[action]
	return predicate, ok
}

// PolicyRegistry maps entities to their action predicates. It is built once at
// startup and never mutated afterwards, so concurrent reads need no locking.
type PolicyRegistry map[Entity]Policy

func (r PolicyRegistry) Lookup(entity Entity) (Policy, bool) {
	policy, ok := r[entity]
	return policy, ok
}

// Decision is the four-way outcome of an authorization check. PolicyNotFound
// and ActionNotFound flag registry gaps; they are never collapsed into Denied
// so the caller can map configuration bugs and refusals to different responses.
type Decision int

const (
	DecisionAllowed Decision = iota
	DecisionDenied
	DecisionPolicyNotFound
	DecisionActionNotFound
)

func (d Decision) String() string {
	switch d {
	case DecisionAllowed:
		return "allowed"
	case DecisionDenied:
		return "denied"
	case DecisionPolicyNotFound:
		return "policy_not_found"
	case DecisionActionNotFound:
		return "action_not_found"
	default:
		return "unknown"
	}
}

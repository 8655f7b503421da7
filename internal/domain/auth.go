package domain

import "sort"

// PermissionSet is the resolved grant set for one caller. The authorization
// engine passes it to predicates without inspecting it; only predicates and
// the embedding application know its shape.
type PermissionSet struct {
	UserID uint
	grants map[string]struct{}
}

func NewPermissionSet(userID uint, grants ...string) PermissionSet {
	set := PermissionSet{UserID: userID, grants: make(map[string]struct{}, len(grants))}
	for _, grant := range grants {
		if grant == "" {
			continue
		}
		set.grants[grant] = struct{}{}
	}
	return set
}

func (p PermissionSet) Has(grant string) bool {
	_, ok := p.grants[grant]
	return ok
}

// Grants returns the granted permission names in sorted order.
func (p PermissionSet) Grants() []string {
	out := make([]string, 0, len(p.grants))
	for grant := range p.grants {
		out = append(out, grant)
	}
	sort.Strings(out)
	return out
}

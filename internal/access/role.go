package access

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleFinance Role = "finance"
	RoleLawyer  Role = "lawyer"
	RoleSeller  Role = "seller"
)

// ContextActorKey is the gin context key holding the authenticated Actor.
const ContextActorKey = "actor"

var knownRoles = []Role{RoleAdmin, RoleManager, RoleFinance, RoleLawyer, RoleSeller}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(knownRoles, r) {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RoleSet is the set of roles held by a user. It is kept sorted and free of
// duplicates so two sets holding the same roles compare equal.
type RoleSet []Role

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, 0, len(roles))
	for _, r := range roles {
		if !slices.Contains(set, r) {
			set = append(set, r)
		}
	}
	slices.Sort(set)
	return set
}

func ParseRoles(values []string) (RoleSet, error) {
	roles := make([]Role, 0, len(values))
	for _, v := range values {
		r, err := ParseRole(v)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return NewRoleSet(roles...), nil
}

func (s RoleSet) Has(r Role) bool {
	return slices.Contains(s, r)
}

func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// IsStaff reports back office roles that see every sale and goal.
func (s RoleSet) IsStaff() bool {
	return s.HasAny(RoleAdmin, RoleManager, RoleFinance, RoleLawyer)
}

func (s RoleSet) CanManage() bool {
	return s.HasAny(RoleAdmin, RoleManager)
}

// CanSettle reports roles allowed to close lots and record payments. They
// also see lots of every seller.
func (s RoleSet) CanSettle() bool {
	return s.HasAny(RoleAdmin, RoleManager, RoleFinance)
}

func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID uuid.UUID
	Roles  RoleSet
}

func ActorFromGin(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(ContextActorKey)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	if !ok || actor.UserID == uuid.Nil {
		return Actor{}, false
	}
	return actor, true
}

// Package policy holds the authorization predicates shared by every domain.
// The functions are pure: they never touch the store and never fail.
package policy

import "github.com/google/uuid"

type Role string

const (
	RoleUser        Role = "user"
	RoleContributor Role = "contributor"
	RoleAdmin       Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleContributor, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated principal performing a request.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Owned is implemented by every resource that records the user who created it.
type Owned interface {
	OwnerID() uuid.UUID
}

// CanMutate decides whether actor may update or delete resource:
// admins always may, everyone else only when they own it.
func CanMutate(actor Actor, resource Owned) bool {
	if actor.IsAdmin() {
		return true
	}
	if resource == nil || actor.ID == uuid.Nil {
		return false
	}
	return resource.OwnerID() == actor.ID
}

// CanRegister decides whether actor may create a Contributor. A non-admin
// may own at most one.
func CanRegister(actor Actor, alreadyRegistered bool) bool {
	return actor.IsAdmin() || !alreadyRegistered
}

// HasRole reports whether actor holds one of roles.
func HasRole(actor Actor, roles ...Role) bool {
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type resource struct{ owner uuid.UUID }

func (r resource) OwnerID() uuid.UUID { return r.owner }

func TestCanMutate(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owner with user role", Actor{ID: owner, Role: RoleUser}, true},
		{"owner with contributor role", Actor{ID: owner, Role: RoleContributor}, true},
		{"owner with admin role", Actor{ID: owner, Role: RoleAdmin}, true},
		{"stranger with user role", Actor{ID: stranger, Role: RoleUser}, false},
		{"stranger with contributor role", Actor{ID: stranger, Role: RoleContributor}, false},
		{"stranger with admin role", Actor{ID: stranger, Role: RoleAdmin}, true},
		{"anonymous", Actor{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.actor, resource{owner: owner}))
		})
	}
}

func TestCanMutate_NilResource(t *testing.T) {
	assert.False(t, CanMutate(Actor{ID: uuid.New(), Role: RoleContributor}, nil))
	assert.True(t, CanMutate(Actor{ID: uuid.New(), Role: RoleAdmin}, nil))
}

func TestCanRegister(t *testing.T) {
	user := Actor{ID: uuid.New(), Role: RoleUser}
	admin := Actor{ID: uuid.New(), Role: RoleAdmin}

	assert.True(t, CanRegister(user, false))
	assert.False(t, CanRegister(user, true))
	assert.True(t, CanRegister(admin, false))
	assert.True(t, CanRegister(admin, true))
}

func TestHasRole(t *testing.T) {
	a := Actor{Role: RoleContributor}
	assert.True(t, HasRole(a, RoleContributor, RoleAdmin))
	assert.False(t, HasRole(a, RoleUser, RoleAdmin))
	assert.False(t, HasRole(a))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("publisher").Valid())
}

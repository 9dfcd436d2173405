package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	e, err := NewEnforcer()
	require.NoError(t, err)
	return NewService(e)
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		roles    []string
		resource string
		action   string
		allowed  bool
	}{
		{"seller reads products", []string{"seller"}, ResourceProduct, ActionRead, true},
		{"seller cannot create products", []string{"seller"}, ResourceProduct, ActionCreate, false},
		{"seller cannot close lots", []string{"seller"}, ResourceLot, ActionClose, false},
		{"finance closes lots", []string{"finance"}, ResourceLot, ActionClose, true},
		{"finance records payments", []string{"finance"}, ResourceLot, ActionPay, true},
		{"finance cannot delete lots", []string{"finance"}, ResourceLot, ActionDelete, false},
		{"manager wildcard on goals", []string{"manager"}, ResourceGoal, ActionDelete, true},
		{"manager cannot delete lots", []string{"manager"}, ResourceLot, ActionDelete, false},
		{"admin deletes lots", []string{"admin"}, ResourceLot, ActionDelete, true},
		{"admin inherits manager", []string{"admin"}, ResourceCommissionException, ActionCreate, true},
		{"lawyer has no lot access", []string{"lawyer"}, ResourceLot, ActionRead, false},
		{"any role grants", []string{"lawyer", "finance"}, ResourceLot, ActionRead, true},
		{"no roles", nil, ResourceProduct, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(EnforceRequest{
				Roles:    tt.roles,
				Resource: tt.resource,
				Action:   tt.action,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.Permissions(NewRoleSet(RoleAdmin))
	require.NoError(t, err)

	assert.Contains(t, perms, PermissionResponse{Role: "admin", Resource: ResourceLot, Action: ActionDelete})
	assert.Contains(t, perms, PermissionResponse{Role: "admin", Resource: ResourceGoal, Action: ActionAll})
}

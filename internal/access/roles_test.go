package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForName(t *testing.T) {
	assert.Equal(t, RoleAdmin, ForName("admin").Name)
	assert.Equal(t, RoleUser, ForName("user").Name)

	// anything unrecognized must not grant permissions
	assert.Equal(t, RoleUser, ForName("superuser").Name)
	assert.Equal(t, RoleUser, ForName("").Name)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(RoleAdmin))
	assert.True(t, Valid(RoleUser))
	assert.False(t, Valid("superuser"))
	assert.False(t, Valid(""))
}

func TestRole_Can(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		resource string
		action   string
		allowed  bool
	}{
		{name: "admin can ban users", role: Admin, resource: "user", action: "ban", allowed: true},
		{name: "admin can impersonate", role: Admin, resource: "user", action: "impersonate", allowed: true},
		{name: "admin can revoke sessions", role: Admin, resource: "session", action: "revoke", allowed: true},
		{name: "admin cannot act on unknown resource", role: Admin, resource: "billing", action: "list", allowed: false},
		{name: "admin cannot do unknown action", role: Admin, resource: "user", action: "explode", allowed: false},
		{name: "user cannot ban", role: User, resource: "user", action: "ban", allowed: false},
		{name: "user cannot list sessions", role: User, resource: "session", action: "list", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.role.Can(tt.resource, tt.action))
		})
	}
}

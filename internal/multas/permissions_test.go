package multas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsFor(t *testing.T) {
	admin := PermissionsFor(RoleAdmin)
	assert.True(t, admin.CanCreate && admin.CanEdit && admin.CanDelete && admin.CanViewIndicacao)

	fin := PermissionsFor(RoleFinanceiro)
	assert.True(t, fin.CanMarkAsPaid)
	assert.True(t, fin.CanAccessBoleto)
	assert.False(t, fin.CanMarkAsComplete)
	assert.False(t, fin.CanViewIndicacao)
	assert.False(t, fin.CanCreate)

	rh := PermissionsFor(RoleRH)
	assert.True(t, rh.CanViewDetails)
	assert.True(t, rh.CanMarkAsComplete)
	assert.False(t, rh.CanMarkAsPaid)
	assert.False(t, rh.CanAccessBoleto)

	assert.Equal(t, Permissions{}, PermissionsFor(Role("visitante")))
}

func TestPermissionsAllows(t *testing.T) {
	tests := []struct {
		role    Role
		action  Action
		allowed bool
	}{
		{RoleAdmin, ActionDelete, true},
		{RoleAdmin, ActionIndicate, true},
		{RoleFinanceiro, ActionMarkPaid, true},
		{RoleFinanceiro, ActionUnmarkPaid, true},
		{RoleFinanceiro, ActionMarkComplete, false},
		{RoleFinanceiro, ActionIndicate, false},
		{RoleFinanceiro, ActionCreate, false},
		{RoleRH, ActionMarkComplete, true},
		{RoleRH, ActionUndoComplete, true},
		{RoleRH, ActionRefuseIndication, true},
		{RoleRH, ActionMarkPaid, false},
		{RoleRH, ActionEdit, false},
		{RoleAdmin, ActionLogin, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, PermissionsFor(tt.role).Allows(tt.action), "%s %s", tt.role, tt.action)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Financeiro ")
	assert.True(t, ok)
	assert.Equal(t, RoleFinanceiro, r)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}

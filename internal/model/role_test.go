package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleSiteManager, RoleProcurementManager, RoleSupplier} {
		assert.True(t, role.Valid(), "role %s", role)
	}
	assert.False(t, Role("INTERN").Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("admin").Valid(), "role values are case sensitive")
}

// The admin permission set is the union of every other role's permissions
// plus the admin-only ones, so adding a permission to any role must be
// reflected in admin without a separate edit.
func TestAdminPermissionSuperset(t *testing.T) {
	for _, role := range []Role{RoleSiteManager, RoleProcurementManager, RoleSupplier} {
		for _, p := range PermissionsOf(role) {
			assert.True(t, HasPermission(RoleAdmin, p), "admin should hold %s from %s", p, role)
		}
	}

	for _, p := range []Permission{
		PermissionAdminRead, PermissionAdminCreate, PermissionAdminUpdate, PermissionAdminDelete,
	} {
		assert.True(t, HasPermission(RoleAdmin, p))
	}

	// 4 own + 4 per delegated role
	assert.Len(t, PermissionsOf(RoleAdmin), 16)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleSiteManager, PermissionSiteManagerCreate))
	assert.True(t, HasPermission(RoleSupplier, PermissionSupplierUpdate))
	assert.False(t, HasPermission(RoleSupplier, PermissionSiteManagerCreate))
	assert.False(t, HasPermission(RoleSiteManager, PermissionAdminRead))
	assert.False(t, HasPermission(Role("INTERN"), PermissionSupplierRead))
}

func TestPermissionsOf_UnknownRole(t *testing.T) {
	assert.Empty(t, PermissionsOf(Role("INTERN")))
}

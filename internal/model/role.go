package model

// Role is the closed set of actor kinds in the system.
type Role string

const (
	RoleAdmin              Role = "ADMIN"
	RoleSiteManager        Role = "SITE_MANAGER"
	RoleProcurementManager Role = "PROCUREMENT_MANAGER"
	RoleSupplier           Role = "SUPPLIER"
)

// Permission is a scope:action capability grantable to a role.
type Permission string

const (
	PermissionProcurementManagerRead   Permission = "procurement_manager:read"
	PermissionProcurementManagerCreate Permission = "procurement_manager:create"
	PermissionProcurementManagerUpdate Permission = "procurement_manager:update"
	PermissionProcurementManagerDelete Permission = "procurement_manager:delete"

	PermissionSiteManagerRead   Permission = "site_manager:read"
	PermissionSiteManagerCreate Permission = "site_manager:create"
	PermissionSiteManagerUpdate Permission = "site_manager:update"
	PermissionSiteManagerDelete Permission = "site_manager:delete"

	PermissionSupplierRead   Permission = "supplier:read"
	PermissionSupplierCreate Permission = "supplier:create"
	PermissionSupplierUpdate Permission = "supplier:update"
	PermissionSupplierDelete Permission = "supplier:delete"

	PermissionAdminRead   Permission = "admin:read"
	PermissionAdminCreate Permission = "admin:create"
	PermissionAdminUpdate Permission = "admin:update"
	PermissionAdminDelete Permission = "admin:delete"
)

// rolePermissions maps each role to its permission set. The admin set is
// composed from the other roles' sets in init so it can never drift.
var rolePermissions = map[Role]map[Permission]bool{
	RoleProcurementManager: {
		PermissionProcurementManagerRead:   true,
		PermissionProcurementManagerCreate: true,
		PermissionProcurementManagerUpdate: true,
		PermissionProcurementManagerDelete: true,
	},
	RoleSiteManager: {
		PermissionSiteManagerRead:   true,
		PermissionSiteManagerCreate: true,
		PermissionSiteManagerUpdate: true,
		PermissionSiteManagerDelete: true,
	},
	RoleSupplier: {
		PermissionSupplierRead:   true,
		PermissionSupplierCreate: true,
		PermissionSupplierUpdate: true,
		PermissionSupplierDelete: true,
	},
}

func init() {
	admin := map[Permission]bool{
		PermissionAdminRead:   true,
		PermissionAdminCreate: true,
		PermissionAdminUpdate: true,
		PermissionAdminDelete: true,
	}
	for _, perms := range rolePermissions {
		for p := range perms {
			admin[p] = true
		}
	}
	rolePermissions[RoleAdmin] = admin
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// PermissionsOf returns the permission set owned by the role.
func PermissionsOf(role Role) []Permission {
	perms := make([]Permission, 0, len(rolePermissions[role]))
	for p := range rolePermissions[role] {
		perms = append(perms, p)
	}
	return perms
}

// HasPermission reports whether the role owns the permission.
func HasPermission(role Role, permission Permission) bool {
	return rolePermissions[role][permission]
}

package auth

// Roles a user may hold.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Capabilities checked by admin routes.
const (
	CapUsersRead   = "users:read"
	CapTasksManage = "tasks:manage"
)

// Capabilities maps each role to the capabilities it grants. Roles missing
// from the table grant nothing.
var Capabilities = map[string]map[string]struct{}{
	RoleAdmin: {
		CapUsersRead:   {},
		CapTasksManage: {},
	},
	RoleManager: {
		CapTasksManage: {},
	},
	RoleUser: {},
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := Capabilities[role]
	return ok
}

// Grants reports whether role holds capability.
func Grants(role, capability string) bool {
	granted, ok := Capabilities[role]
	if !ok {
		return false
	}
	_, ok = granted[capability]
	return ok
}

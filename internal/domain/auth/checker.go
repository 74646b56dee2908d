package auth

import "strings"

// Checker evaluates capability queries for a single role. An unrecognized
// role resolves to an empty capability set, so every query denies.
type Checker struct {
	role        Role
	permissions map[string]struct{}
}

func NewChecker(role Role) *Checker {
	perms := map[string]struct{}{}
	for _, perm := range RolePermissions[role] {
		perms[perm] = struct{}{}
	}
	return &Checker{role: role, permissions: perms}
}

func (c *Checker) Role() Role {
	return c.role
}

// Has reports whether the role holds the given capability token.
func (c *Checker) Has(permission string) bool {
	_, ok := c.permissions[permission]
	return ok
}

// HasAny reports whether the role holds at least one of the tokens.
func (c *Checker) HasAny(permissions ...string) bool {
	for _, perm := range permissions {
		if c.Has(perm) {
			return true
		}
	}
	return false
}

// HasAll reports whether the role holds every one of the tokens.
func (c *Checker) HasAll(permissions ...string) bool {
	for _, perm := range permissions {
		if !c.Has(perm) {
			return false
		}
	}
	return true
}

// CanAccessModule reports whether the role holds any capability under the
// given module prefix, e.g. "attendance".
func (c *Checker) CanAccessModule(module string) bool {
	prefix := module + ":"
	for perm := range c.permissions {
		if strings.HasPrefix(perm, prefix) {
			return true
		}
	}
	return false
}

// Permissions returns a copy of the role's capability set.
func (c *Checker) Permissions() []string {
	perms := make([]string, len(RolePermissions[c.role]))
	copy(perms, RolePermissions[c.role])
	return perms
}

// HasPermission is a one-shot convenience over NewChecker.
func HasPermission(role Role, permission string) bool {
	return NewChecker(role).Has(permission)
}

// Package rbac holds the static role→permission matrix and the gate every
// mutation passes before validation or persistence is attempted. This is a
// flat lookup fixed at deploy time, not a policy engine.
package rbac

import (
	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/enums"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
)

// Actor is the authenticated caller as resolved by the identity collaborator.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

var grantsByRole = map[enums.Role][]enums.Permission{
	enums.RoleAdmin: enums.AllPermissions(),

	enums.RoleBrandOwner: {
		enums.PermissionViewBrands,
		enums.PermissionCreateBrand,
		enums.PermissionEditBrand,
		enums.PermissionViewProducts,
		enums.PermissionCreateProduct,
		enums.PermissionEditProduct,
		enums.PermissionDeleteProduct,
		enums.PermissionViewCategories,
		enums.PermissionViewCollections,
		enums.PermissionViewOptions,
		enums.PermissionViewOrders,
	},

	enums.RoleCustomer: {
		enums.PermissionViewBrands,
		enums.PermissionViewProducts,
		enums.PermissionViewCategories,
		enums.PermissionViewCollections,
		enums.PermissionViewOrders,
	},

	enums.RoleModerator: {
		enums.PermissionViewBrands,
		enums.PermissionEditBrand,
		enums.PermissionViewProducts,
		enums.PermissionEditProduct,
		enums.PermissionDeleteProduct,
		enums.PermissionViewCategories,
		enums.PermissionManageCategories,
		enums.PermissionViewCollections,
		enums.PermissionManageCollections,
		enums.PermissionViewOptions,
		enums.PermissionManageOptions,
		enums.PermissionViewUsers,
		enums.PermissionViewOrders,
		enums.PermissionManageOrders,
	},
}

var permissionSets = buildPermissionSets()

func buildPermissionSets() map[enums.Role]map[enums.Permission]struct{} {
	sets := make(map[enums.Role]map[enums.Permission]struct{}, len(grantsByRole))
	for role, perms := range grantsByRole {
		set := make(map[enums.Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		sets[role] = set
	}
	return sets
}

// Can reports whether the role grants the permission.
func Can(role enums.Role, permission enums.Permission) bool {
	set, ok := permissionSets[role]
	if !ok {
		return false
	}
	_, ok = set[permission]
	return ok
}

// Permissions returns the role's grants. The slice is a copy.
func Permissions(role enums.Role) []enums.Permission {
	perms := grantsByRole[role]
	out := make([]enums.Permission, len(perms))
	copy(out, perms)
	return out
}

// Require rejects the caller with a forbidden error unless the actor's role
// grants the permission.
func Require(actor Actor, permission enums.Permission) error {
	if Can(actor.Role, permission) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "missing permission "+permission.String())
}

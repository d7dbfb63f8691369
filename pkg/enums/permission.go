package enums

import "fmt"

// Permission names a single gated operation class. The role matrix that
// grants permissions lives in internal/rbac and is fixed at deploy time.
type Permission string

const (
	PermissionViewBrands  Permission = "view-brands"
	PermissionCreateBrand Permission = "create-brand"
	PermissionEditBrand   Permission = "edit-brand"
	PermissionDeleteBrand Permission = "delete-brand"

	PermissionViewProducts  Permission = "view-products"
	PermissionCreateProduct Permission = "create-product"
	PermissionEditProduct   Permission = "edit-product"
	PermissionDeleteProduct Permission = "delete-product"

	PermissionViewCategories   Permission = "view-categories"
	PermissionManageCategories Permission = "manage-categories"

	PermissionViewCollections   Permission = "view-collections"
	PermissionManageCollections Permission = "manage-collections"

	PermissionViewOptions   Permission = "view-options"
	PermissionManageOptions Permission = "manage-options"

	PermissionViewUsers   Permission = "view-users"
	PermissionManageUsers Permission = "manage-users"

	PermissionViewOrders   Permission = "view-orders"
	PermissionManageOrders Permission = "manage-orders"
)

var validPermissions = []Permission{
	PermissionViewBrands,
	PermissionCreateBrand,
	PermissionEditBrand,
	PermissionDeleteBrand,
	PermissionViewProducts,
	PermissionCreateProduct,
	PermissionEditProduct,
	PermissionDeleteProduct,
	PermissionViewCategories,
	PermissionManageCategories,
	PermissionViewCollections,
	PermissionManageCollections,
	PermissionViewOptions,
	PermissionManageOptions,
	PermissionViewUsers,
	PermissionManageUsers,
	PermissionViewOrders,
	PermissionManageOrders,
}

// AllPermissions returns every known permission. The slice is a copy.
func AllPermissions() []Permission {
	out := make([]Permission, len(validPermissions))
	copy(out, validPermissions)
	return out
}

// String implements fmt.Stringer.
func (p Permission) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Permission.
func (p Permission) IsValid() bool {
	for _, candidate := range validPermissions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePermission converts raw input into a Permission.
func ParsePermission(value string) (Permission, error) {
	for _, candidate := range validPermissions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid permission %q", value)
}

package rbac

import (
	"testing"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/enums"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
)

func TestAdminHasEveryPermission(t *testing.T) {
	for _, perm := range enums.AllPermissions() {
		if !Can(enums.RoleAdmin, perm) {
			t.Fatalf("expected admin to hold %s", perm)
		}
	}
}

func TestMatrixSpotChecks(t *testing.T) {
	tests := []struct {
		role    enums.Role
		perm    enums.Permission
		granted bool
	}{
		{enums.RoleBrandOwner, enums.PermissionCreateBrand, true},
		{enums.RoleBrandOwner, enums.PermissionDeleteBrand, false},
		{enums.RoleBrandOwner, enums.PermissionDeleteProduct, true},
		{enums.RoleBrandOwner, enums.PermissionManageCategories, false},
		{enums.RoleCustomer, enums.PermissionViewProducts, true},
		{enums.RoleCustomer, enums.PermissionCreateProduct, false},
		{enums.RoleCustomer, enums.PermissionViewUsers, false},
		{enums.RoleModerator, enums.PermissionManageOptions, true},
		{enums.RoleModerator, enums.PermissionManageUsers, false},
		{enums.RoleModerator, enums.PermissionViewUsers, true},
		{enums.RoleModerator, enums.PermissionCreateBrand, false},
		{enums.RoleModerator, enums.PermissionManageOrders, true},
	}

	for _, tt := range tests {
		if got := Can(tt.role, tt.perm); got != tt.granted {
			t.Fatalf("Can(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.granted)
		}
	}
}

func TestRequireReturnsForbidden(t *testing.T) {
	actor := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}

	if err := Require(actor, enums.PermissionViewProducts); err != nil {
		t.Fatalf("expected grant, got %v", err)
	}

	err := Require(actor, enums.PermissionDeleteProduct)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden code, got %v", err)
	}
}

func TestUnknownRoleHasNoGrants(t *testing.T) {
	if Can(enums.Role("ghost"), enums.PermissionViewProducts) {
		t.Fatal("expected unknown role to hold nothing")
	}
}

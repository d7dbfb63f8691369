package brands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
)

func setupBrandsTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.BrandCategory{},
		&models.CategoryOption{},
		&models.CategoryCollection{},
		&models.Option{},
		&models.Collection{},
		&models.Product{},
		&models.Variant{},
		&models.VariantValue{},
		&models.Image{},
		&models.ProductImage{},
	))

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), nil)
	require.NoError(t, err)
	return svc, conn
}

func seedUser(t *testing.T, conn *gorm.DB, role enums.Role) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Name:     "Owner",
		Email:    fmt.Sprintf("%s@example.test", uuid.NewString()),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

func TestCreateDefaultsOwnerToActor(t *testing.T) {
	svc, conn := setupBrandsTest(t)
	ctx := context.Background()

	owner := seedUser(t, conn, enums.RoleBrandOwner)
	actor := rbac.Actor{UserID: owner.ID, Role: enums.RoleBrandOwner}

	dto, err := svc.Create(ctx, actor, CreateInput{Name: "Nord Atelier"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, dto.UserID)
	assert.Equal(t, "nord-atelier", dto.Slug)
	assert.True(t, dto.IsActive)
}

func TestCreateRejectsUnknownOwner(t *testing.T) {
	svc, _ := setupBrandsTest(t)

	actor := rbac.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
	ghost := uuid.New()
	_, err := svc.Create(context.Background(), actor, CreateInput{Name: "Ghost", UserID: &ghost})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestBrandOwnerCannotDelete(t *testing.T) {
	svc, conn := setupBrandsTest(t)
	ctx := context.Background()

	owner := seedUser(t, conn, enums.RoleBrandOwner)
	actor := rbac.Actor{UserID: owner.ID, Role: enums.RoleBrandOwner}

	dto, err := svc.Create(ctx, actor, CreateInput{Name: "Nord Atelier"})
	require.NoError(t, err)

	err = svc.Delete(ctx, actor, dto.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestDeleteCascadesOverCatalog(t *testing.T) {
	svc, conn := setupBrandsTest(t)
	ctx := context.Background()

	owner := seedUser(t, conn, enums.RoleBrandOwner)
	admin := rbac.Actor{UserID: seedUser(t, conn, enums.RoleAdmin).ID, Role: enums.RoleAdmin}

	ownerID := owner.ID
	brand, err := svc.Create(ctx, admin, CreateInput{Name: "Nord Atelier", UserID: &ownerID})
	require.NoError(t, err)

	category := models.Category{ID: uuid.New(), Name: "Shoes", Slug: "shoes", IsActive: true}
	require.NoError(t, conn.Create(&category).Error)
	require.NoError(t, svc.AttachCategory(ctx, admin, brand.ID, category.ID))

	product := models.Product{
		ID: uuid.New(), BrandID: brand.ID, CategoryID: category.ID,
		Name: "Runner", Slug: "runner", IsActive: true,
	}
	require.NoError(t, conn.Create(&product).Error)

	variant := models.Variant{
		ID: uuid.New(), ProductID: product.ID, SKU: "RUN-001",
		Price: decimal.NewFromInt(120), Quantity: 3, IsAvailable: true,
	}
	require.NoError(t, conn.Create(&variant).Error)

	option := models.Option{ID: uuid.New(), Name: "Size", InternalName: "size", Slug: "size", Type: enums.OptionTypeSelect}
	require.NoError(t, conn.Create(&option).Error)
	require.NoError(t, conn.Create(&models.VariantValue{
		ID: uuid.New(), VariantID: variant.ID, OptionID: option.ID, Value: "42",
	}).Error)

	image := models.Image{ID: uuid.New(), Path: "images/runner.jpg"}
	require.NoError(t, conn.Create(&image).Error)
	require.NoError(t, conn.Create(&models.ProductImage{
		ID: uuid.New(), ProductID: product.ID, ImageID: image.ID, IsPrimary: true,
	}).Error)

	require.NoError(t, svc.Delete(ctx, admin, brand.ID))

	// brand row and its category grants are gone
	var brandCount int64
	require.NoError(t, conn.Model(&models.Brand{}).Where("id = ?", brand.ID).Count(&brandCount).Error)
	assert.Zero(t, brandCount)
	var grantCount int64
	require.NoError(t, conn.Model(&models.BrandCategory{}).Where("brand_id = ?", brand.ID).Count(&grantCount).Error)
	assert.Zero(t, grantCount)

	// product survives as a tombstone
	var live int64
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", product.ID).Count(&live).Error)
	assert.Zero(t, live)
	var tombstoned int64
	require.NoError(t, conn.Unscoped().Model(&models.Product{}).
		Where("id = ? AND deleted_at IS NOT NULL", product.ID).Count(&tombstoned).Error)
	assert.Equal(t, int64(1), tombstoned)

	// variants, values, and image links are hard-deleted
	var variantCount, valueCount, linkCount int64
	require.NoError(t, conn.Model(&models.Variant{}).Where("product_id = ?", product.ID).Count(&variantCount).Error)
	require.NoError(t, conn.Model(&models.VariantValue{}).Where("variant_id = ?", variant.ID).Count(&valueCount).Error)
	require.NoError(t, conn.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&linkCount).Error)
	assert.Zero(t, variantCount)
	assert.Zero(t, valueCount)
	assert.Zero(t, linkCount)

	// the image asset itself survives
	var imageCount int64
	require.NoError(t, conn.Model(&models.Image{}).Where("id = ?", image.ID).Count(&imageCount).Error)
	assert.Equal(t, int64(1), imageCount)
}

func TestAttachCategoryIsIdempotent(t *testing.T) {
	svc, conn := setupBrandsTest(t)
	ctx := context.Background()

	owner := seedUser(t, conn, enums.RoleBrandOwner)
	actor := rbac.Actor{UserID: owner.ID, Role: enums.RoleBrandOwner}

	brand, err := svc.Create(ctx, actor, CreateInput{Name: "Nord Atelier"})
	require.NoError(t, err)

	category := models.Category{ID: uuid.New(), Name: "Shoes", Slug: "shoes", IsActive: true}
	require.NoError(t, conn.Create(&category).Error)

	require.NoError(t, svc.AttachCategory(ctx, actor, brand.ID, category.ID))
	require.NoError(t, svc.AttachCategory(ctx, actor, brand.ID, category.ID))

	listed, err := svc.ListCategories(ctx, actor, brand.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "shoes", listed[0].Slug)
}

func TestListFiltersByOwner(t *testing.T) {
	svc, conn := setupBrandsTest(t)
	ctx := context.Background()

	first := seedUser(t, conn, enums.RoleBrandOwner)
	second := seedUser(t, conn, enums.RoleBrandOwner)

	_, err := svc.Create(ctx, rbac.Actor{UserID: first.ID, Role: enums.RoleBrandOwner}, CreateInput{Name: "First Label"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, rbac.Actor{UserID: second.ID, Role: enums.RoleBrandOwner}, CreateInput{Name: "Second Label"})
	require.NoError(t, err)

	listed, err := svc.List(ctx, rbac.Actor{UserID: first.ID, Role: enums.RoleBrandOwner}, ListInput{UserID: &first.ID})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "first-label", listed.Items[0].Slug)
}

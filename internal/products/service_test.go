package products

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

type productsFixture struct {
	svc      Service
	conn     *gorm.DB
	brand    models.Brand
	category models.Category
}

func setupProductsTest(t *testing.T) productsFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.BrandCategory{},
		&models.Product{},
		&models.Variant{},
		&models.VariantValue{},
		&models.Image{},
		&models.ProductImage{},
	))

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	brand := models.Brand{ID: uuid.New(), UserID: uuid.New(), Name: "Nord Atelier", Slug: "nord-atelier", IsActive: true}
	category := models.Category{ID: uuid.New(), Name: "Shoes", Slug: "shoes", IsActive: true}
	require.NoError(t, conn.Create(&brand).Error)
	require.NoError(t, conn.Create(&category).Error)

	return productsFixture{svc: svc, conn: conn, brand: brand, category: category}
}

func adminActor() rbac.Actor {
	return rbac.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func (f productsFixture) createProduct(t *testing.T, name string) *ProductDTO {
	t.Helper()
	dto, err := f.svc.Create(context.Background(), adminActor(), CreateInput{
		BrandID:    f.brand.ID,
		CategoryID: f.category.ID,
		Name:       name,
	})
	require.NoError(t, err)
	return dto
}

func TestCreateDerivesSlug(t *testing.T) {
	f := setupProductsTest(t)

	dto := f.createProduct(t, "Trail Runner 2")
	assert.Equal(t, "trail-runner-2", dto.Slug)
	assert.True(t, dto.IsActive)
	assert.False(t, dto.IsAvailable)
}

func TestCreateRejectsUnknownBrand(t *testing.T) {
	f := setupProductsTest(t)

	_, err := f.svc.Create(context.Background(), adminActor(), CreateInput{
		BrandID:    uuid.New(),
		CategoryID: f.category.ID,
		Name:       "Runner",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateHonorsBrandCategoryGrants(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	other := models.Category{ID: uuid.New(), Name: "Bags", Slug: "bags", IsActive: true}
	require.NoError(t, f.conn.Create(&other).Error)
	// granting one category restricts the brand to it
	require.NoError(t, f.conn.Create(&models.BrandCategory{BrandID: f.brand.ID, CategoryID: other.ID}).Error)

	_, err := f.svc.Create(ctx, adminActor(), CreateInput{
		BrandID:    f.brand.ID,
		CategoryID: f.category.ID,
		Name:       "Runner",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = f.svc.Create(ctx, adminActor(), CreateInput{
		BrandID:    f.brand.ID,
		CategoryID: other.ID,
		Name:       "Runner",
	})
	require.NoError(t, err)
}

func TestSlugConflictIncludesTombstones(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")
	require.NoError(t, f.svc.Delete(ctx, adminActor(), dto.ID))

	_, err := f.svc.Create(ctx, adminActor(), CreateInput{
		BrandID:    f.brand.ID,
		CategoryID: f.category.ID,
		Name:       "Runner",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestDeleteAndRestore(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")
	require.NoError(t, f.svc.Delete(ctx, adminActor(), dto.ID))

	_, err := f.svc.Get(ctx, adminActor(), dto.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	restored, err := f.svc.Restore(ctx, adminActor(), dto.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	_, err = f.svc.Get(ctx, adminActor(), dto.ID)
	require.NoError(t, err)

	// restoring a live product is a conflict
	_, err = f.svc.Restore(ctx, adminActor(), dto.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestForceDeleteRemovesEverything(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")

	variant := models.Variant{
		ID: uuid.New(), ProductID: dto.ID, SKU: "RUN-001",
		Price: decimal.NewFromInt(120), Quantity: 1, IsAvailable: true,
	}
	require.NoError(t, f.conn.Create(&variant).Error)
	require.NoError(t, f.conn.Create(&models.VariantValue{
		ID: uuid.New(), VariantID: variant.ID, OptionID: uuid.New(), Value: "42",
	}).Error)
	image := models.Image{ID: uuid.New(), Path: "images/runner.jpg"}
	require.NoError(t, f.conn.Create(&image).Error)
	require.NoError(t, f.conn.Create(&models.ProductImage{
		ID: uuid.New(), ProductID: dto.ID, ImageID: image.ID,
	}).Error)

	require.NoError(t, f.svc.ForceDelete(ctx, adminActor(), dto.ID))

	var productCount int64
	require.NoError(t, f.conn.Unscoped().Model(&models.Product{}).Where("id = ?", dto.ID).Count(&productCount).Error)
	assert.Zero(t, productCount)
	var variantCount int64
	require.NoError(t, f.conn.Model(&models.Variant{}).Where("product_id = ?", dto.ID).Count(&variantCount).Error)
	assert.Zero(t, variantCount)
	var linkCount int64
	require.NoError(t, f.conn.Model(&models.ProductImage{}).Where("product_id = ?", dto.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
}

func TestAvailabilityIsDerived(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")

	variant := models.Variant{
		ID: uuid.New(), ProductID: dto.ID, SKU: "RUN-001",
		Price: decimal.NewFromInt(120), Quantity: 0, IsAvailable: true,
	}
	require.NoError(t, f.conn.Create(&variant).Error)

	got, err := f.svc.Get(ctx, adminActor(), dto.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable, "zero stock keeps the product unavailable")

	require.NoError(t, f.conn.Model(&models.Variant{}).Where("id = ?", variant.ID).Update("quantity", 5).Error)

	got, err = f.svc.Get(ctx, adminActor(), dto.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)

	listed, err := f.svc.List(ctx, adminActor(), ListInput{AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
}

func TestPrimaryImageDemotion(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")

	first := models.Image{ID: uuid.New(), Path: "images/a.jpg"}
	second := models.Image{ID: uuid.New(), Path: "images/b.jpg"}
	require.NoError(t, f.conn.Create(&first).Error)
	require.NoError(t, f.conn.Create(&second).Error)

	require.NoError(t, f.svc.AttachImage(ctx, adminActor(), dto.ID, AttachImageInput{
		ImageID: first.ID, Position: 1, IsPrimary: true,
	}))
	require.NoError(t, f.svc.AttachImage(ctx, adminActor(), dto.ID, AttachImageInput{
		ImageID: second.ID, Position: 2, IsPrimary: true,
	}))

	primary, err := f.svc.PrimaryImage(ctx, adminActor(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, primary.ImageID)

	var primaryCount int64
	require.NoError(t, f.conn.Model(&models.ProductImage{}).
		Where("product_id = ? AND is_primary = ? AND variant_id IS NULL", dto.ID, true).
		Count(&primaryCount).Error)
	assert.Equal(t, int64(1), primaryCount)

	require.NoError(t, f.svc.SetPrimaryImage(ctx, adminActor(), dto.ID, first.ID))
	primary, err = f.svc.PrimaryImage(ctx, adminActor(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, primary.ImageID)
}

func TestVariantScopedPrimaryIsIndependent(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")
	variant := models.Variant{
		ID: uuid.New(), ProductID: dto.ID, SKU: "RUN-001",
		Price: decimal.NewFromInt(120), Quantity: 1, IsAvailable: true,
	}
	require.NoError(t, f.conn.Create(&variant).Error)

	hero := models.Image{ID: uuid.New(), Path: "images/hero.jpg"}
	swatch := models.Image{ID: uuid.New(), Path: "images/swatch.jpg"}
	require.NoError(t, f.conn.Create(&hero).Error)
	require.NoError(t, f.conn.Create(&swatch).Error)

	require.NoError(t, f.svc.AttachImage(ctx, adminActor(), dto.ID, AttachImageInput{
		ImageID: hero.ID, IsPrimary: true,
	}))
	require.NoError(t, f.svc.AttachImage(ctx, adminActor(), dto.ID, AttachImageInput{
		ImageID: swatch.ID, VariantID: &variant.ID, IsPrimary: true,
	}))

	// the variant-scoped primary does not demote the gallery primary
	primary, err := f.svc.PrimaryImage(ctx, adminActor(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, hero.ID, primary.ImageID)
}

func TestAttachImageRejectsForeignVariant(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")
	other := f.createProduct(t, "Walker")

	foreign := models.Variant{
		ID: uuid.New(), ProductID: other.ID, SKU: "WLK-001",
		Price: decimal.NewFromInt(80), Quantity: 1, IsAvailable: true,
	}
	require.NoError(t, f.conn.Create(&foreign).Error)
	image := models.Image{ID: uuid.New(), Path: "images/x.jpg"}
	require.NoError(t, f.conn.Create(&image).Error)

	err := f.svc.AttachImage(ctx, adminActor(), dto.ID, AttachImageInput{
		ImageID: image.ID, VariantID: &foreign.ID,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestTrashedListingRequiresDeleteAccess(t *testing.T) {
	f := setupProductsTest(t)
	ctx := context.Background()

	dto := f.createProduct(t, "Runner")
	require.NoError(t, f.svc.Delete(ctx, adminActor(), dto.ID))

	customer := rbac.Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	_, err := f.svc.List(ctx, customer, ListInput{TrashedOnly: true})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	listed, err := f.svc.List(ctx, adminActor(), ListInput{TrashedOnly: true})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.NotNil(t, listed.Items[0].DeletedAt)
}

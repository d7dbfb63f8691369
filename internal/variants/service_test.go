package variants

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

type variantsFixture struct {
	svc      Service
	conn     *gorm.DB
	product  models.Product
	category models.Category
	option   models.Option
}

func setupVariantsTest(t *testing.T) variantsFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Category{},
		&models.Option{},
		&models.CategoryOption{},
		&models.Product{},
		&models.Variant{},
		&models.VariantValue{},
		&models.ProductImage{},
		&models.Image{},
	))

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)

	category := models.Category{ID: uuid.New(), Name: "Shoes", Slug: "shoes", IsActive: true}
	option := models.Option{ID: uuid.New(), Name: "Size", InternalName: "size", Slug: "size", Type: enums.OptionTypeSelect}
	require.NoError(t, conn.Create(&category).Error)
	require.NoError(t, conn.Create(&option).Error)
	require.NoError(t, conn.Create(&models.CategoryOption{
		CategoryID: category.ID, OptionID: option.ID, IsRequired: true,
	}).Error)

	product := models.Product{
		ID: uuid.New(), BrandID: uuid.New(), CategoryID: category.ID,
		Name: "Runner", Slug: "runner", IsActive: true,
	}
	require.NoError(t, conn.Create(&product).Error)

	return variantsFixture{svc: svc, conn: conn, product: product, category: category, option: option}
}

func adminActor() rbac.Actor {
	return rbac.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func TestCreateValidatesPricing(t *testing.T) {
	f := setupVariantsTest(t)

	_, err := f.svc.Create(context.Background(), adminActor(), CreateInput{
		ProductID: f.product.ID,
		SKU:       "RUN-001",
		Price:     decimal.NewFromInt(-5),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	f := setupVariantsTest(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-001", Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-001", Price: decimal.NewFromInt(110),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestDefaultFlagIsExclusivePerProduct(t *testing.T) {
	f := setupVariantsTest(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-001", Price: decimal.NewFromInt(100), IsDefault: true,
	})
	require.NoError(t, err)

	second, err := f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-002", Price: decimal.NewFromInt(100), IsDefault: true,
	})
	require.NoError(t, err)

	var defaults int64
	require.NoError(t, f.conn.Model(&models.Variant{}).
		Where("product_id = ? AND is_default = ?", f.product.ID, true).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)

	got, err := f.svc.Get(ctx, adminActor(), second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)

	require.NoError(t, f.svc.SetDefault(ctx, adminActor(), first.ID))
	got, err = f.svc.Get(ctx, adminActor(), first.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	got, err = f.svc.Get(ctx, adminActor(), second.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestSetValueReplacesExisting(t *testing.T) {
	f := setupVariantsTest(t)
	ctx := context.Background()

	variant, err := f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-001", Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.SetValue(ctx, adminActor(), variant.ID, SetValueInput{OptionID: f.option.ID, Value: "41"}))
	require.NoError(t, f.svc.SetValue(ctx, adminActor(), variant.ID, SetValueInput{OptionID: f.option.ID, Value: "42"}))

	values, err := f.svc.ListValues(ctx, adminActor(), variant.ID)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "42", values[0].Value)
	assert.Equal(t, "Size", values[0].OptionName)
}

func TestSetValueRejectsInapplicableOption(t *testing.T) {
	f := setupVariantsTest(t)
	ctx := context.Background()

	variant, err := f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-001", Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	stray := models.Option{ID: uuid.New(), Name: "Material", InternalName: "material", Slug: "material", Type: enums.OptionTypeText}
	require.NoError(t, f.conn.Create(&stray).Error)

	err = f.svc.SetValue(ctx, adminActor(), variant.ID, SetValueInput{OptionID: stray.ID, Value: "leather"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteRemovesValuesAndImageLinks(t *testing.T) {
	f := setupVariantsTest(t)
	ctx := context.Background()

	variant, err := f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-001", Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.SetValue(ctx, adminActor(), variant.ID, SetValueInput{OptionID: f.option.ID, Value: "42"}))

	image := models.Image{ID: uuid.New(), Path: "images/swatch.jpg"}
	require.NoError(t, f.conn.Create(&image).Error)
	require.NoError(t, f.conn.Create(&models.ProductImage{
		ID: uuid.New(), ProductID: f.product.ID, ImageID: image.ID, VariantID: &variant.ID,
	}).Error)

	require.NoError(t, f.svc.Delete(ctx, adminActor(), variant.ID))

	var valueCount, linkCount int64
	require.NoError(t, f.conn.Model(&models.VariantValue{}).Where("variant_id = ?", variant.ID).Count(&valueCount).Error)
	require.NoError(t, f.conn.Model(&models.ProductImage{}).Where("variant_id = ?", variant.ID).Count(&linkCount).Error)
	assert.Zero(t, valueCount)
	assert.Zero(t, linkCount)
}

func TestListByProductAvailableOnly(t *testing.T) {
	f := setupVariantsTest(t)
	ctx := context.Background()

	unavailable := false
	_, err := f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-001", Price: decimal.NewFromInt(100),
		Quantity: 5, IsAvailable: &unavailable,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-002", Price: decimal.NewFromInt(100), Quantity: 3,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, adminActor(), CreateInput{
		ProductID: f.product.ID, SKU: "RUN-003", Price: decimal.NewFromInt(100), Quantity: 0,
	})
	require.NoError(t, err)

	all, err := f.svc.ListByProduct(ctx, adminActor(), f.product.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	available, err := f.svc.ListByProduct(ctx, adminActor(), f.product.ID, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "RUN-002", available[0].SKU)
	assert.True(t, available[0].Available)
}

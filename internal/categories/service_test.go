package categories

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
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

func setupCategoriesTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Option{},
		&models.Collection{},
		&models.Category{},
		&models.CategoryOption{},
		&models.CategoryCollection{},
		&models.BrandCategory{},
		&models.Product{},
	))

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)
	return svc, conn
}

func adminActor() rbac.Actor {
	return rbac.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func moderatorActor() rbac.Actor {
	return rbac.Actor{UserID: uuid.New(), Role: enums.RoleModerator}
}

func TestModeratorCanManageCategories(t *testing.T) {
	svc, _ := setupCategoriesTest(t)

	dto, err := svc.Create(context.Background(), moderatorActor(), CreateInput{Name: "Sneakers & Boots"})
	require.NoError(t, err)
	assert.Equal(t, "sneakers-boots", dto.Slug)
}

func TestAttachOptionIsIdempotent(t *testing.T) {
	svc, conn := setupCategoriesTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Shoes"})
	require.NoError(t, err)

	size := models.Option{ID: uuid.New(), Name: "Size", InternalName: "size", Slug: "size", Type: enums.OptionTypeSelect}
	require.NoError(t, conn.Create(&size).Error)

	require.NoError(t, svc.AttachOption(ctx, adminActor(), category.ID, AttachOptionInput{
		OptionID: size.ID, IsRequired: false, Position: 5,
	}))
	// second attach updates the pivot attributes in place
	require.NoError(t, svc.AttachOption(ctx, adminActor(), category.ID, AttachOptionInput{
		OptionID: size.ID, IsRequired: true, Position: 1,
	}))

	listed, err := svc.ListOptions(ctx, adminActor(), category.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].IsRequired)
	assert.Equal(t, 1, listed[0].Position)
}

func TestAttachOptionRejectsUnknownOption(t *testing.T) {
	svc, _ := setupCategoriesTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Shoes"})
	require.NoError(t, err)

	err = svc.AttachOption(ctx, adminActor(), category.ID, AttachOptionInput{OptionID: uuid.New()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListOptionsOrderedByPosition(t *testing.T) {
	svc, conn := setupCategoriesTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Shoes"})
	require.NoError(t, err)

	size := models.Option{ID: uuid.New(), Name: "Size", InternalName: "size", Slug: "size", Type: enums.OptionTypeSelect}
	color := models.Option{ID: uuid.New(), Name: "Color", InternalName: "color", Slug: "color", Type: enums.OptionTypeColor}
	require.NoError(t, conn.Create(&size).Error)
	require.NoError(t, conn.Create(&color).Error)

	require.NoError(t, svc.AttachOption(ctx, adminActor(), category.ID, AttachOptionInput{OptionID: size.ID, Position: 2}))
	require.NoError(t, svc.AttachOption(ctx, adminActor(), category.ID, AttachOptionInput{OptionID: color.ID, Position: 1}))

	listed, err := svc.ListOptions(ctx, adminActor(), category.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "color", listed[0].Slug)
	assert.Equal(t, "size", listed[1].Slug)
}

func TestDetachOptionMissingLink(t *testing.T) {
	svc, _ := setupCategoriesTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Shoes"})
	require.NoError(t, err)

	err = svc.DetachOption(ctx, adminActor(), category.ID, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteRestrictedBySoftDeletedProduct(t *testing.T) {
	svc, conn := setupCategoriesTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Shoes"})
	require.NoError(t, err)

	product := models.Product{
		ID:         uuid.New(),
		BrandID:    uuid.New(),
		CategoryID: category.ID,
		Name:       "Runner",
		Slug:       "runner",
		IsActive:   true,
	}
	require.NoError(t, conn.Create(&product).Error)
	require.NoError(t, conn.Delete(&product).Error) // leaves a tombstone

	err = svc.Delete(ctx, adminActor(), category.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeReferenced, typed.Code())
}

func TestDeleteEmptyCategoryRemovesPivots(t *testing.T) {
	svc, conn := setupCategoriesTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Shoes"})
	require.NoError(t, err)

	option := models.Option{ID: uuid.New(), Name: "Size", InternalName: "size", Slug: "size", Type: enums.OptionTypeSelect}
	collection := models.Collection{ID: uuid.New(), Name: "Featured", Slug: "featured", IsActive: true}
	require.NoError(t, conn.Create(&option).Error)
	require.NoError(t, conn.Create(&collection).Error)

	require.NoError(t, svc.AttachOption(ctx, adminActor(), category.ID, AttachOptionInput{OptionID: option.ID}))
	require.NoError(t, svc.AttachCollection(ctx, adminActor(), category.ID, AttachCollectionInput{CollectionID: collection.ID}))
	require.NoError(t, conn.Create(&models.BrandCategory{BrandID: uuid.New(), CategoryID: category.ID}).Error)

	require.NoError(t, svc.Delete(ctx, adminActor(), category.ID))

	for _, model := range []any{&models.CategoryOption{}, &models.CategoryCollection{}, &models.BrandCategory{}} {
		var count int64
		require.NoError(t, conn.Model(model).Where("category_id = ?", category.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
}

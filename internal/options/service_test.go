package options

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

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
	"github.com/smuvr/spraby/pkg/pagination"
)

func setupOptionsTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Option{},
		&models.CategoryOption{},
		&models.VariantValue{},
	))

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)
	return svc, conn
}

func adminActor() rbac.Actor {
	return rbac.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func TestCreateDerivesSlugAndInternalName(t *testing.T) {
	svc, _ := setupOptionsTest(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Shoe Size (EU)"})
	require.NoError(t, err)

	assert.Equal(t, "shoe-size-eu", dto.Slug)
	assert.Equal(t, "shoe-size-eu", dto.InternalName)
	assert.Equal(t, enums.OptionTypeSelect, dto.Type)
	assert.NotEqual(t, uuid.Nil, dto.ID)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupOptionsTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Color", Type: enums.OptionTypeColor})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminActor(), CreateInput{Name: "color"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _ := setupOptionsTest(t)

	_, err := svc.Create(context.Background(), adminActor(), CreateInput{Name: "Material", Type: enums.OptionType("dropdown")})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateForbiddenForCustomer(t *testing.T) {
	svc, _ := setupOptionsTest(t)

	actor := rbac.Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	_, err := svc.Create(context.Background(), actor, CreateInput{Name: "Size"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestUpdateRederivesSlugFromName(t *testing.T) {
	svc, _ := setupOptionsTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Size"})
	require.NoError(t, err)

	newName := "Ring Size"
	updated, err := svc.Update(ctx, adminActor(), created.ID, UpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "ring-size", updated.Slug)

	// explicit slug wins over re-derivation
	explicit := "sizing"
	updated, err = svc.Update(ctx, adminActor(), created.ID, UpdateInput{Name: &newName, Slug: &explicit})
	require.NoError(t, err)
	assert.Equal(t, "sizing", updated.Slug)
}

func TestUpdateMissingOption(t *testing.T) {
	svc, _ := setupOptionsTest(t)

	name := "Size"
	_, err := svc.Update(context.Background(), adminActor(), uuid.New(), UpdateInput{Name: &name})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteRestrictedWhileValuesReference(t *testing.T) {
	svc, conn := setupOptionsTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Color", Type: enums.OptionTypeColor})
	require.NoError(t, err)

	value := models.VariantValue{
		ID:        uuid.New(),
		VariantID: uuid.New(),
		OptionID:  created.ID,
		Value:     "red",
	}
	require.NoError(t, conn.Create(&value).Error)

	err = svc.Delete(ctx, adminActor(), created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeReferenced, typed.Code())

	// still present
	_, err = svc.Get(ctx, adminActor(), created.ID)
	require.NoError(t, err)
}

func TestDeleteRemovesCategoryLinks(t *testing.T) {
	svc, conn := setupOptionsTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Name: "Size"})
	require.NoError(t, err)

	link := models.CategoryOption{CategoryID: uuid.New(), OptionID: created.ID, Position: 1}
	require.NoError(t, conn.Create(&link).Error)

	require.NoError(t, svc.Delete(ctx, adminActor(), created.ID))

	var linkCount int64
	require.NoError(t, conn.Model(&models.CategoryOption{}).Where("option_id = ?", created.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	_, err = svc.Get(ctx, adminActor(), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListPaginates(t *testing.T) {
	svc, conn := setupOptionsTest(t)
	ctx := context.Background()

	base := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		row := models.Option{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("Option %d", i),
			InternalName: fmt.Sprintf("option-%d", i),
			Slug:         fmt.Sprintf("option-%d", i),
			Type:         enums.OptionTypeSelect,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, conn.Create(&row).Error)
	}

	first, err := svc.List(ctx, adminActor(), ListInput{Page: pagination.Params{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)
	assert.Equal(t, "option-0", first.Items[0].Slug)

	second, err := svc.List(ctx, adminActor(), ListInput{Page: pagination.Params{Limit: 2, Cursor: first.NextCursor}})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.NextCursor)
	assert.Equal(t, "option-2", second.Items[0].Slug)
}

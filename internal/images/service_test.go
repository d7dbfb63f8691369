package images

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

func setupImagesTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Image{},
		&models.ProductImage{},
	))

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)
	return svc, conn
}

func adminActor() rbac.Actor {
	return rbac.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func TestCreateRequiresPath(t *testing.T) {
	svc, _ := setupImagesTest(t)

	_, err := svc.Create(context.Background(), adminActor(), CreateInput{Path: "  "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdatePatchesMetadataOnly(t *testing.T) {
	svc, _ := setupImagesTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Path: "images/hero.jpg"})
	require.NoError(t, err)

	alt := "hero shot"
	updated, err := svc.Update(ctx, adminActor(), created.ID, UpdateInput{Alt: &alt})
	require.NoError(t, err)
	require.NotNil(t, updated.Alt)
	assert.Equal(t, "hero shot", *updated.Alt)
	assert.Equal(t, "images/hero.jpg", updated.Path)
}

func TestCustomerCannotMutateImages(t *testing.T) {
	svc, _ := setupImagesTest(t)

	actor := rbac.Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	_, err := svc.Create(context.Background(), actor, CreateInput{Path: "images/x.jpg"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestDeleteDetachesFromProducts(t *testing.T) {
	svc, conn := setupImagesTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Path: "images/hero.jpg"})
	require.NoError(t, err)

	require.NoError(t, conn.Create(&models.ProductImage{
		ID: uuid.New(), ProductID: uuid.New(), ImageID: created.ID, IsPrimary: true,
	}).Error)

	require.NoError(t, svc.Delete(ctx, adminActor(), created.ID))

	var linkCount int64
	require.NoError(t, conn.Model(&models.ProductImage{}).
		Where("image_id = ?", created.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	_, err = svc.Get(ctx, adminActor(), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

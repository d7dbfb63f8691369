package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/brands"
	"github.com/smuvr/spraby/internal/categories"
	"github.com/smuvr/spraby/internal/collections"
	"github.com/smuvr/spraby/internal/images"
	"github.com/smuvr/spraby/internal/options"
	"github.com/smuvr/spraby/internal/products"
	"github.com/smuvr/spraby/internal/variants"
	"github.com/smuvr/spraby/pkg/config"
	"github.com/smuvr/spraby/pkg/db"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Option{},
		&models.Collection{},
		&models.Category{},
		&models.CategoryOption{},
		&models.CategoryCollection{},
		&models.Brand{},
		&models.BrandCategory{},
		&models.Product{},
		&models.Variant{},
		&models.VariantValue{},
		&models.Image{},
		&models.ProductImage{},
	))

	client := db.NewWithConn(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	optionService, err := options.NewService(options.NewRepository(conn), client)
	require.NoError(t, err)
	collectionService, err := collections.NewService(collections.NewRepository(conn), client)
	require.NoError(t, err)
	categoryService, err := categories.NewService(categories.NewRepository(conn), client)
	require.NoError(t, err)
	brandService, err := brands.NewService(brands.NewRepository(conn), client, logg)
	require.NoError(t, err)
	productService, err := products.NewService(products.NewRepository(conn), client)
	require.NoError(t, err)
	variantService, err := variants.NewService(variants.NewRepository(conn), client)
	require.NoError(t, err)
	imageService, err := images.NewService(images.NewRepository(conn), client)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	handler := NewRouter(
		cfg,
		logg,
		client,
		metrics.NewHTTPMetrics(prometheus.NewRegistry()),
		nil,
		optionService,
		collectionService,
		categoryService,
		brandService,
		productService,
		variantService,
		imageService,
	)
	return handler, conn
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string, role enums.Role) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("X-User-Id", uuid.NewString())
		req.Header.Set("X-User-Role", role.String())
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doRequest(t, handler, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Spraby-Env"))
}

func TestMissingIdentityHeadersRejected(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/options", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

func TestUnknownRoleRejected(t *testing.T) {
	handler, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/options", nil)
	req.Header.Set("X-User-Id", uuid.NewString())
	req.Header.Set("X-User-Role", "superuser")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionLifecycleOverHTTP(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/options",
		`{"name":"Color","type":"color"}`, enums.RoleAdmin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "color", created.Data.Slug)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/options/"+created.Data.ID, "", enums.RoleModerator)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Customers hold no option permissions at all.
	rec = doRequest(t, handler, http.MethodGet, "/api/v1/options", "", enums.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCustomerCannotCreateOptions(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/options",
		`{"name":"Size"}`, enums.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnknownBodyFieldRejected(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/options",
		`{"name":"Size","bogus":true}`, enums.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBrandLifecycleOverHTTP(t *testing.T) {
	handler, conn := setupRouter(t)

	ownerID := uuid.New()
	require.NoError(t, conn.Create(&models.User{
		ID: ownerID, Name: "Owner", Email: "owner@example.com", Role: enums.RoleBrandOwner, IsActive: true,
	}).Error)

	body := fmt.Sprintf(`{"user_id":%q,"name":"Atelier Nova"}`, ownerID)
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/brands", body, enums.RoleAdmin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "atelier-nova", created.Data.Slug)

	rec = doRequest(t, handler, http.MethodDelete, "/api/v1/brands/"+created.Data.ID, "", enums.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/brands/"+created.Data.ID, "", enums.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doRequest(t, handler, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

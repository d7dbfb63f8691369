// Command seed fills a development database with one account per role and a
// small demo catalog. Every record is keyed on its natural unique column, so
// re-running the command is safe.
package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/pkg/config"
	"github.com/smuvr/spraby/pkg/db"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
	"github.com/smuvr/spraby/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	if cfg.App.IsProd() {
		logg.Warn(ctx, "refusing to seed a production database")
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return seed(tx)
	}); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed complete")
}

func seed(tx *gorm.DB) error {
	owner, err := seedUsers(tx)
	if err != nil {
		return err
	}

	category, option, err := seedTaxonomy(tx)
	if err != nil {
		return err
	}

	brand, err := seedBrand(tx, owner, category)
	if err != nil {
		return err
	}

	return seedProduct(tx, brand, category, option)
}

func seedUsers(tx *gorm.DB) (*models.User, error) {
	users := []models.User{
		{Name: "Admin", Email: "admin@spraby.dev", Role: enums.RoleAdmin},
		{Name: "Moderator", Email: "moderator@spraby.dev", Role: enums.RoleModerator},
		{Name: "Brand Owner", Email: "owner@spraby.dev", Role: enums.RoleBrandOwner},
		{Name: "Customer", Email: "customer@spraby.dev", Role: enums.RoleCustomer},
	}

	var owner models.User
	for i := range users {
		users[i].ID = uuid.New()
		users[i].IsActive = true
		if err := tx.Where(models.User{Email: users[i].Email}).FirstOrCreate(&users[i]).Error; err != nil {
			return nil, err
		}
		if users[i].Role == enums.RoleBrandOwner {
			owner = users[i]
		}
	}
	return &owner, nil
}

func seedTaxonomy(tx *gorm.DB) (*models.Category, *models.Option, error) {
	category := models.Category{
		ID:       uuid.New(),
		Name:     "Dresses",
		Slug:     "dresses",
		IsActive: true,
	}
	if err := tx.Where(models.Category{Slug: category.Slug}).FirstOrCreate(&category).Error; err != nil {
		return nil, nil, err
	}

	option := models.Option{
		ID:           uuid.New(),
		Name:         "Size",
		InternalName: "size",
		Slug:         "size",
		Type:         enums.OptionTypeSelect,
	}
	if err := tx.Where(models.Option{Slug: option.Slug}).FirstOrCreate(&option).Error; err != nil {
		return nil, nil, err
	}

	link := models.CategoryOption{
		CategoryID: category.ID,
		OptionID:   option.ID,
		IsRequired: true,
	}
	if err := tx.Where(models.CategoryOption{CategoryID: category.ID, OptionID: option.ID}).
		FirstOrCreate(&link).Error; err != nil {
		return nil, nil, err
	}

	collection := models.Collection{
		ID:       uuid.New(),
		Name:     "Summer",
		Slug:     "summer",
		IsActive: true,
	}
	if err := tx.Where(models.Collection{Slug: collection.Slug}).FirstOrCreate(&collection).Error; err != nil {
		return nil, nil, err
	}

	placement := models.CategoryCollection{
		CategoryID:   category.ID,
		CollectionID: collection.ID,
	}
	if err := tx.Where(models.CategoryCollection{CategoryID: category.ID, CollectionID: collection.ID}).
		FirstOrCreate(&placement).Error; err != nil {
		return nil, nil, err
	}

	return &category, &option, nil
}

func seedBrand(tx *gorm.DB, owner *models.User, category *models.Category) (*models.Brand, error) {
	brand := models.Brand{
		ID:       uuid.New(),
		UserID:   owner.ID,
		Name:     "Atelier Nova",
		Slug:     "atelier-nova",
		IsActive: true,
	}
	if err := tx.Where(models.Brand{Slug: brand.Slug}).FirstOrCreate(&brand).Error; err != nil {
		return nil, err
	}

	grant := models.BrandCategory{BrandID: brand.ID, CategoryID: category.ID}
	if err := tx.Where(models.BrandCategory{BrandID: brand.ID, CategoryID: category.ID}).
		FirstOrCreate(&grant).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func seedProduct(tx *gorm.DB, brand *models.Brand, category *models.Category, option *models.Option) error {
	product := models.Product{
		ID:         uuid.New(),
		BrandID:    brand.ID,
		CategoryID: category.ID,
		Name:       "Linen Wrap Dress",
		Slug:       "linen-wrap-dress",
		IsActive:   true,
	}
	if err := tx.Where(models.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
		return err
	}

	sizes := []struct {
		sku       string
		value     string
		isDefault bool
	}{
		{sku: "LWD-S", value: "S", isDefault: true},
		{sku: "LWD-M", value: "M"},
		{sku: "LWD-L", value: "L"},
	}

	for _, size := range sizes {
		variant := models.Variant{
			ID:          uuid.New(),
			ProductID:   product.ID,
			SKU:         size.sku,
			Price:       decimal.NewFromInt(89),
			Quantity:    10,
			IsAvailable: true,
			IsDefault:   size.isDefault,
		}
		if err := tx.Where(models.Variant{SKU: size.sku}).FirstOrCreate(&variant).Error; err != nil {
			return err
		}

		value := models.VariantValue{
			ID:        uuid.New(),
			VariantID: variant.ID,
			OptionID:  option.ID,
			Value:     size.value,
		}
		if err := tx.Where(models.VariantValue{VariantID: variant.ID, OptionID: option.ID}).
			FirstOrCreate(&value).Error; err != nil {
			return err
		}
	}

	alt := "Linen wrap dress"
	image := models.Image{
		ID:   uuid.New(),
		Path: "images/linen-wrap-dress.jpg",
		Alt:  &alt,
	}
	if err := tx.Where(models.Image{Path: image.Path}).FirstOrCreate(&image).Error; err != nil {
		return err
	}

	link := models.ProductImage{
		ID:        uuid.New(),
		ProductID: product.ID,
		ImageID:   image.ID,
		IsPrimary: true,
	}
	return tx.Where(models.ProductImage{ProductID: product.ID, ImageID: image.ID}).
		FirstOrCreate(&link).Error
}

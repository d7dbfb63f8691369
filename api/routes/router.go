package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smuvr/spraby/api/controllers"
	"github.com/smuvr/spraby/api/middleware"
	brandsvc "github.com/smuvr/spraby/internal/brands"
	categorysvc "github.com/smuvr/spraby/internal/categories"
	collectionsvc "github.com/smuvr/spraby/internal/collections"
	imagesvc "github.com/smuvr/spraby/internal/images"
	optionsvc "github.com/smuvr/spraby/internal/options"
	productsvc "github.com/smuvr/spraby/internal/products"
	variantsvc "github.com/smuvr/spraby/internal/variants"
	"github.com/smuvr/spraby/pkg/config"
	"github.com/smuvr/spraby/pkg/db"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	optionService optionsvc.Service,
	collectionService collectionsvc.Service,
	categoryService categorysvc.Service,
	brandService brandsvc.Service,
	productService productsvc.Service,
	variantService variantsvc.Service,
	imageService imagesvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))

		r.Route("/options", func(r chi.Router) {
			r.Get("/", controllers.ListOptions(optionService, logg))
			r.Post("/", controllers.CreateOption(optionService, logg, httpMetrics))
			r.Route("/{optionID}", func(r chi.Router) {
				r.Get("/", controllers.GetOption(optionService, logg))
				r.Patch("/", controllers.UpdateOption(optionService, logg, httpMetrics))
				r.Delete("/", controllers.DeleteOption(optionService, logg, httpMetrics))
			})
		})

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", controllers.ListCollections(collectionService, logg))
			r.Post("/", controllers.CreateCollection(collectionService, logg, httpMetrics))
			r.Route("/{collectionID}", func(r chi.Router) {
				r.Get("/", controllers.GetCollection(collectionService, logg))
				r.Patch("/", controllers.UpdateCollection(collectionService, logg, httpMetrics))
				r.Delete("/", controllers.DeleteCollection(collectionService, logg, httpMetrics))
				r.Get("/categories", controllers.ListCollectionCategories(collectionService, logg))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(categoryService, logg))
			r.Post("/", controllers.CreateCategory(categoryService, logg, httpMetrics))
			r.Route("/{categoryID}", func(r chi.Router) {
				r.Get("/", controllers.GetCategory(categoryService, logg))
				r.Patch("/", controllers.UpdateCategory(categoryService, logg, httpMetrics))
				r.Delete("/", controllers.DeleteCategory(categoryService, logg, httpMetrics))

				r.Route("/options", func(r chi.Router) {
					r.Get("/", controllers.ListCategoryOptions(categoryService, logg))
					r.Post("/", controllers.AttachCategoryOption(categoryService, logg, httpMetrics))
					r.Delete("/{optionID}", controllers.DetachCategoryOption(categoryService, logg, httpMetrics))
				})

				r.Route("/collections", func(r chi.Router) {
					r.Get("/", controllers.ListCategoryCollections(categoryService, logg))
					r.Post("/", controllers.AttachCategoryCollection(categoryService, logg, httpMetrics))
					r.Delete("/{collectionID}", controllers.DetachCategoryCollection(categoryService, logg, httpMetrics))
				})
			})
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.ListBrands(brandService, logg))
			r.Post("/", controllers.CreateBrand(brandService, logg, httpMetrics))
			r.Route("/{brandID}", func(r chi.Router) {
				r.Get("/", controllers.GetBrand(brandService, logg))
				r.Patch("/", controllers.UpdateBrand(brandService, logg, httpMetrics))
				r.Delete("/", controllers.DeleteBrand(brandService, logg, httpMetrics))

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", controllers.ListBrandCategories(brandService, logg))
					r.Put("/{categoryID}", controllers.AttachBrandCategory(brandService, logg, httpMetrics))
					r.Delete("/{categoryID}", controllers.DetachBrandCategory(brandService, logg, httpMetrics))
				})
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg, httpMetrics))
			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(productService, logg))
				r.Patch("/", controllers.UpdateProduct(productService, logg, httpMetrics))
				r.Delete("/", controllers.DeleteProduct(productService, logg, httpMetrics))
				r.Post("/restore", controllers.RestoreProduct(productService, logg, httpMetrics))
				r.Delete("/force", controllers.ForceDeleteProduct(productService, logg, httpMetrics))

				r.Get("/variants", controllers.ListProductVariants(variantService, logg))

				r.Route("/images", func(r chi.Router) {
					r.Get("/", controllers.ListProductImages(productService, logg))
					r.Post("/", controllers.AttachProductImage(productService, logg, httpMetrics))
					r.Get("/primary", controllers.GetPrimaryProductImage(productService, logg))
					r.Put("/{imageID}/primary", controllers.SetPrimaryProductImage(productService, logg, httpMetrics))
					r.Delete("/{imageID}", controllers.DetachProductImage(productService, logg, httpMetrics))
				})
			})
		})

		r.Route("/variants", func(r chi.Router) {
			r.Post("/", controllers.CreateVariant(variantService, logg, httpMetrics))
			r.Route("/{variantID}", func(r chi.Router) {
				r.Get("/", controllers.GetVariant(variantService, logg))
				r.Patch("/", controllers.UpdateVariant(variantService, logg, httpMetrics))
				r.Delete("/", controllers.DeleteVariant(variantService, logg, httpMetrics))
				r.Put("/default", controllers.SetDefaultVariant(variantService, logg, httpMetrics))

				r.Route("/values", func(r chi.Router) {
					r.Get("/", controllers.ListVariantValues(variantService, logg))
					r.Put("/", controllers.SetVariantValue(variantService, logg, httpMetrics))
					r.Delete("/{optionID}", controllers.DeleteVariantValue(variantService, logg, httpMetrics))
				})
			})
		})

		r.Route("/images", func(r chi.Router) {
			r.Get("/", controllers.ListImages(imageService, logg))
			r.Post("/", controllers.CreateImage(imageService, logg, httpMetrics))
			r.Route("/{imageID}", func(r chi.Router) {
				r.Get("/", controllers.GetImage(imageService, logg))
				r.Patch("/", controllers.UpdateImage(imageService, logg, httpMetrics))
				r.Delete("/", controllers.DeleteImage(imageService, logg, httpMetrics))
			})
		})
	})

	return r
}

// Package server assembles the Fiber application: middleware chain,
// repositories, services, controllers and routes.
package server

import (
	"log/slog"

	"pos-kemasan/cache"
	"pos-kemasan/config"
	"pos-kemasan/controllers"
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/metrics"
	"pos-kemasan/middleware"
	"pos-kemasan/notifier"
	"pos-kemasan/repositories"
	"pos-kemasan/routes"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Options carries the optional collaborators. Zero values fall back to the
// default logger, no metrics, no report cache and log-only notifications.
type Options struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Cache    cache.ReportCache
	Notifier notifier.LowStockNotifier
}

func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	reportCache := opts.Cache
	if reportCache == nil {
		reportCache = cache.Noop{}
	}
	lowStock := opts.Notifier
	if lowStock == nil {
		lowStock = notifier.LogNotifier{Log: log}
	}

	app := fiber.New(fiber.Config{
		AppName:      "pos-kemasan",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: helpers.Fail,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
	}
	cfg.SetupCORS(app)

	store := repositories.NewStore(db)

	reportService := services.NewReportService(store, reportCache, cfg.ReportCacheTTL, opts.Metrics)
	authService := services.NewAuthService(store, cfg.JWTSecret, cfg.JWTExpiration)

	var pinger controllers.Pinger
	if p, ok := reportCache.(controllers.Pinger); ok {
		pinger = p
	}

	routes.Setup(app, &routes.Handlers{
		MainRoutes: cfg.MainRoutes,
		Auth:       middleware.NewAuthMiddleware(authService),
		Metrics:    opts.Metrics,

		AuthController:      controllers.NewAuthController(authService),
		UserController:      controllers.NewUserController(services.NewUserService(store)),
		OrderController:     controllers.NewOrderController(services.NewOrderService(store, opts.Metrics, reportService)),
		MaterialController:  controllers.NewMaterialController(services.NewMaterialService(store, lowStock, opts.Metrics)),
		CategoryController:  controllers.NewCategoryController(services.NewCategoryService(store)),
		FinancialController: controllers.NewFinancialController(services.NewFinancialService(store, reportService)),
		ReportController:    controllers.NewReportController(reportService),
		HealthController:    controllers.NewHealthController(db, pinger),
	})

	return app
}

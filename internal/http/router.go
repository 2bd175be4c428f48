// Package http wires the gin router for the admin gateway.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/api"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/config"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/handlers"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/auth"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/categories"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/products"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/sections"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/settings"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/session"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/storage"
)

type RouterDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Sessions session.Store
	Staging  storage.FactoryResult
	Backend  *api.Client
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Config.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	sessCfg := middleware.SessionCfg{
		Store:      d.Sessions,
		CookieName: d.Config.Session.CookieName,
		Secure:     d.Config.Session.Secure,
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.Metrics(),
		middleware.ErrorHandler(d.Logger),
		middleware.Session(sessCfg, d.Logger),
	)

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Page not found."))
	})

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.Staging.Driver == "local" {
		r.Static(d.Config.Storage.LocalURLPrefix, d.Config.Storage.LocalDir)
	}

	authSvc := auth.NewService(d.Backend, d.Logger)
	productsSvc := products.NewService(d.Backend, d.Logger)
	categoriesSvc := categories.NewService(d.Backend, d.Logger)
	sectionsSvc := sections.NewService(d.Backend, d.Logger)
	settingsSvc := settings.NewService(d.Backend, d.Logger)

	authH := handlers.NewAuthHandler(authSvc, sessCfg, d.Config.Session.TTL)
	productsH := handlers.NewProductsHandler(productsSvc, sessCfg, d.Staging.Storage)
	categoriesH := handlers.NewCategoriesHandler(categoriesSvc, sessCfg)
	sectionsH := handlers.NewSectionsHandler(sectionsSvc, sessCfg)
	settingsH := handlers.NewSettingsHandler(settingsSvc, sessCfg, d.Staging.Storage)

	r.POST("/api/admin/login", authH.Login)

	admin := r.Group("/api/admin", middleware.RequireAuth())
	{
		admin.POST("/logout", authH.Logout)

		admin.GET("/products", productsH.List)
		admin.GET("/products/new", productsH.New)
		admin.GET("/products/:id", productsH.Get)
		admin.POST("/products", productsH.Create)
		admin.PUT("/products/:id", productsH.Update)
		admin.DELETE("/products/:id", productsH.Delete)
		admin.DELETE("/products/:id/images/:slot", productsH.DeleteImage)

		admin.GET("/categories", categoriesH.Page)
		admin.GET("/categories/:id", categoriesH.Get)
		admin.POST("/categories", categoriesH.Create)
		admin.PUT("/categories/:id", categoriesH.Update)
		admin.DELETE("/categories/:id", categoriesH.Delete)

		admin.GET("/sections", sectionsH.List)
		admin.POST("/sections", sectionsH.Create)
		admin.PUT("/sections/:id", sectionsH.Update)
		admin.DELETE("/sections/:id", sectionsH.Delete)

		admin.GET("/settings/shop", settingsH.GetShop)
		admin.PUT("/settings/shop", settingsH.SaveShop)
		admin.GET("/settings/footer", settingsH.GetFooter)
		admin.PUT("/settings/footer", settingsH.SaveFooter)
		admin.GET("/settings/slider", settingsH.GetSlider)
		admin.PUT("/settings/slider", settingsH.SaveSlider)
		admin.GET("/settings/theme", settingsH.GetTheme)
		admin.PUT("/settings/theme", settingsH.SaveTheme)
	}

	return r
}

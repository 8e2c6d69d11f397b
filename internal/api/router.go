package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/numerologyhub/site-api/internal/api/handler"
	"github.com/numerologyhub/site-api/internal/api/middleware"
	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/ports"
	"github.com/numerologyhub/site-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Log          zerolog.Logger
	ExposeErrors bool
	Cookie       handler.CookieConfig
	StaticDir    string
	// Registerer receives the HTTP request metrics. Defaults to the global registry.
	Registerer prometheus.Registerer

	Auth          ports.AuthService
	Sessions      ports.SessionService
	Orders        ports.OrderService
	Payments      ports.PaymentService
	Admin         ports.AdminService
	Catalog       ports.CatalogService
	Contacts      ports.ContactService
	SampleReports ports.SampleReportService
	Profiles      ports.ProfileService
	Media         ports.MediaService

	Health map[string]handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.ExposeErrors)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "numerology",
		Registerer: reg,
	}))
	e.Use(echomiddleware.BodyLimit("8M"))
	e.Use(middleware.Session(d.Sessions, d.Cookie.Name))

	// require builds a route guard backed by a fresh directory read.
	require := func(r authz.Resource, a authz.Action) echo.MiddlewareFunc {
		return middleware.Require(d.Auth, d.Log, r, a)
	}

	// --- Operations ---
	health := handlers.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth ---
	auth := handler.NewAuthHandler(d.Auth, d.Sessions, d.Cookie)
	api.POST("/auth/signup", auth.Signup)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/logout", auth.Logout)
	api.GET("/auth/session", auth.Session)

	// --- Orders and payments ---
	orders := handler.NewOrderHandler(d.Orders)
	api.GET("/orders", orders.List, require(authz.Orders, authz.List))
	api.POST("/orders", orders.Create, require(authz.Orders, authz.Create))
	api.POST("/orders/lookup", orders.Lookup, require(authz.Orders, authz.Lookup))
	api.GET("/orders/:id", orders.Get, require(authz.Orders, authz.Read))
	api.POST("/orders/:id/cancel", orders.Cancel, require(authz.Orders, authz.Cancel))

	payments := handler.NewPaymentHandler(d.Payments)
	api.POST("/payments/verify", payments.Verify)
	api.POST("/payments/webhook", payments.Webhook)

	// --- Catalog and leads ---
	catalog := handler.NewCatalogHandler(d.Catalog)
	api.GET("/services", catalog.List, require(authz.Catalog, authz.List))
	api.GET("/services/:id", catalog.Get, require(authz.Catalog, authz.Read))

	leads := handler.NewLeadHandler(d.Contacts, d.SampleReports)
	api.POST("/contact", leads.SubmitContact, require(authz.Contacts, authz.Create))
	api.POST("/sample-reports", leads.SubmitSampleReport, require(authz.SampleReports, authz.Create))

	// --- Profile ---
	profile := handler.NewProfileHandler(d.Profiles, d.Media)
	api.GET("/profile", profile.Get, require(authz.Profile, authz.Read))
	api.PUT("/profile", profile.Update, require(authz.Profile, authz.Update))
	api.PUT("/profile/password", profile.ChangePassword, require(authz.Profile, authz.Update))
	api.POST("/upload", profile.Upload, require(authz.Uploads, authz.Create))

	// --- Admin ---
	adminAPI := api.Group("/admin")
	admin := handler.NewAdminHandler(d.Admin)
	adminAPI.GET("/stats", admin.Stats, require(authz.Stats, authz.Read))
	adminAPI.GET("/orders", orders.ListAll, require(authz.Orders, authz.ListAll))
	adminAPI.GET("/services", catalog.ListAll, require(authz.Catalog, authz.ListAll))
	adminAPI.POST("/services", catalog.Create, require(authz.Catalog, authz.Create))
	adminAPI.PUT("/services/:id", catalog.Update, require(authz.Catalog, authz.Update))
	adminAPI.DELETE("/services/:id", catalog.Delete, require(authz.Catalog, authz.Delete))
	adminAPI.GET("/contacts", leads.ListContacts, require(authz.Contacts, authz.List))
	adminAPI.PATCH("/contacts/:id", leads.UpdateContactStatus, require(authz.Contacts, authz.Update))
	adminAPI.DELETE("/contacts/:id", leads.DeleteContact, require(authz.Contacts, authz.Delete))
	adminAPI.GET("/sample-reports", leads.ListSampleReports, require(authz.SampleReports, authz.List))
	adminAPI.DELETE("/sample-reports/:id", leads.DeleteSampleReport, require(authz.SampleReports, authz.Delete))

	// --- Frontend pages, behind the access gate ---
	if d.StaticDir != "" {
		pages := e.Group("", middleware.NewGate(d.Auth, d.Log).Middleware())
		pages.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/")
			},
			Root:  d.StaticDir,
			HTML5: true,
		}))
	}

	return e
}

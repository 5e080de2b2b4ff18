package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"consite/internal/config"
	"consite/internal/handler"
	"consite/internal/model"
	"consite/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	siteHandler *handler.SiteHandler,
	itemHandler *handler.ItemHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes: echo-jwt validates signature and expiry, ResolveCaller
	// checks the session row and threads the caller through the request
	// context.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	}), ResolveCaller(authService))

	secured.POST("/auth/logout", authHandler.Logout)

	// Every authenticated role sees its own site's orders.
	secured.GET("/all-users/order/all/details", orderHandler.List)

	// Admin routes
	admin := secured.Group("/admin")
	admin.POST("/users", userHandler.Register, RequirePermission(model.PermissionAdminCreate))
	admin.GET("/users", userHandler.List, RequirePermission(model.PermissionAdminRead))
	admin.PUT("/users/:id/activate", userHandler.Activate, RequirePermission(model.PermissionAdminUpdate))
	admin.PUT("/users/:id/deactivate", userHandler.Deactivate, RequirePermission(model.PermissionAdminUpdate))
	admin.PUT("/users/reset-password", userHandler.ResetPassword, RequirePermission(model.PermissionAdminUpdate))

	admin.POST("/site", siteHandler.Add, RequirePermission(model.PermissionAdminCreate))
	admin.GET("/site", siteHandler.List, RequirePermission(model.PermissionAdminRead))
	admin.GET("/site/:id", siteHandler.Get, RequirePermission(model.PermissionAdminRead))
	admin.GET("/site/:id/users", siteHandler.Users, RequirePermission(model.PermissionAdminRead))
	admin.PUT("/site", siteHandler.Update, RequirePermission(model.PermissionAdminUpdate))
	admin.PUT("/site/allocate", siteHandler.Allocate, RequirePermission(model.PermissionAdminUpdate))
	admin.PUT("/site/deallocate", siteHandler.Deallocate, RequirePermission(model.PermissionAdminUpdate))
	admin.DELETE("/site/:id", siteHandler.Delete, RequirePermission(model.PermissionAdminDelete))

	// Site manager routes
	siteManager := secured.Group("/site-manager")
	siteManager.POST("/item", itemHandler.Add, RequirePermission(model.PermissionSiteManagerCreate))
	siteManager.GET("/item", itemHandler.List, RequirePermission(model.PermissionSiteManagerRead))
	siteManager.GET("/item/:id", itemHandler.Get, RequirePermission(model.PermissionSiteManagerRead))
	siteManager.PUT("/item", itemHandler.Update, RequirePermission(model.PermissionSiteManagerUpdate))
	siteManager.DELETE("/item/:id", itemHandler.Delete, RequirePermission(model.PermissionSiteManagerDelete))

	siteManager.POST("/order", orderHandler.Add, RequirePermission(model.PermissionSiteManagerCreate))
	siteManager.PUT("/order/item", orderHandler.AddItem, RequirePermission(model.PermissionSiteManagerUpdate))
	siteManager.DELETE("/order/item/:id", orderHandler.RemoveItem, RequirePermission(model.PermissionSiteManagerDelete))
	siteManager.PUT("/order/complete/:id", orderHandler.Complete, RequirePermission(model.PermissionSiteManagerUpdate))
	siteManager.PUT("/item/complete/:id", orderHandler.CompleteItem, RequirePermission(model.PermissionSiteManagerUpdate))
	siteManager.PUT("/item/return/:id", orderHandler.ReturnItem, RequirePermission(model.PermissionSiteManagerUpdate))

	// Procurement manager routes
	procurement := secured.Group("/procurement-manager")
	procurement.GET("/suppliers", orderHandler.Suppliers, RequirePermission(model.PermissionProcurementManagerRead))
	procurement.PUT("/order/assign/:id", orderHandler.AssignSupplier, RequirePermission(model.PermissionProcurementManagerUpdate))
	procurement.PUT("/order/approval/:id", orderHandler.Approve, RequirePermission(model.PermissionProcurementManagerUpdate))
	procurement.PUT("/order/cancel/:id", orderHandler.Cancel, RequirePermission(model.PermissionProcurementManagerUpdate))

	// Supplier routes
	supplier := secured.Group("/supplier")
	supplier.PUT("/order/delivered/:id", orderHandler.Deliver, RequirePermission(model.PermissionSupplierUpdate))
	supplier.PUT("/item/delivered/:id", orderHandler.DeliverItem, RequirePermission(model.PermissionSupplierUpdate))
	supplier.PUT("/item/cancelled/:id", orderHandler.CancelItem, RequirePermission(model.PermissionSupplierUpdate))
	supplier.GET("/site/info/:id", orderHandler.SiteInfo, RequirePermission(model.PermissionSupplierRead))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

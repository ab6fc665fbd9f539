package routes

import (
	"github.com/l4greenl/it-inventory/internal/core/container"
	"github.com/l4greenl/it-inventory/internal/middleware"
	"github.com/l4greenl/it-inventory/pkg/roles"
	"github.com/l4greenl/it-inventory/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes wires the endpoints any client may call without a
// session: the auth endpoints themselves and plain reads of assets and
// reference data.
func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	public := router.Group("/api")

	container.LoginHandler.RegisterRoutes(public)
	container.AssetHandler.RegisterPublicRoutes(public)
	container.CatalogHandler.RegisterPublicRoutes(public)
	container.QRCodeHandler.RegisterPublicRoutes(public)
}

// RegisterProtectedRoutes wires everything that mutates state or exposes
// internal data. The whole group requires an authenticated admin session.
func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protected := router.Group("/api")
	protected.Use(security.RequireAuth(), security.Authorize(roles.Admin))

	container.AssetHandler.RegisterProtectedRoutes(protected)
	container.CatalogHandler.RegisterProtectedRoutes(protected)
	container.NeedHandler.RegisterRoutes(protected)
	container.ChangeHandler.RegisterRoutes(protected)
	container.QRCodeHandler.RegisterProtectedRoutes(protected)
	container.ExportHandler.RegisterRoutes(protected)
	container.UserHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine, container *container.Container) {
	router.GET("/health", middleware.HealthCheck(container.Repository.DB))
}

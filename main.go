package main

import (
	"context"
	"net/http"

	"github.com/l4greenl/it-inventory/cmd"
	"github.com/l4greenl/it-inventory/internal/config"
	"github.com/l4greenl/it-inventory/internal/core/container"
	"github.com/l4greenl/it-inventory/internal/core/logger"
	"github.com/l4greenl/it-inventory/internal/core/routes"
	"github.com/l4greenl/it-inventory/internal/database"
	"github.com/l4greenl/it-inventory/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd.Execute(ctx)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to the database", zap.Error(err))
	}
	defer db.Close()

	log.Info("connected to the database")

	appContainer := container.NewAppContainer(db, cfg, log)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.CORS(cfg.FrontendBaseURL))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("inventory_session", store))

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router, appContainer)

	if err := router.Run(cfg.AppHost); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

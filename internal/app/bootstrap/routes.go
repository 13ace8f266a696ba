// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/deadlinesdragons/questhub/internal/app/features/admin"
	authfeature "github.com/deadlinesdragons/questhub/internal/app/features/auth"
	healthfeature "github.com/deadlinesdragons/questhub/internal/app/features/health"
	tasksfeature "github.com/deadlinesdragons/questhub/internal/app/features/tasks"
	teamsfeature "github.com/deadlinesdragons/questhub/internal/app/features/teams"
	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/app/system/auth"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. Questhub creates the token
// manager, wires the user fetcher for auth, and mounts the JSON API
// feature routers under /api plus the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each authenticated request so role and
	// team changes take effect immediately.
	tokens.SetUserFetcher(userstore.NewFetcher(deps.QuesthubMongoDatabase))

	db := deps.QuesthubMongoDatabase

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(reqlog.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.QuesthubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", authfeature.Routes(authfeature.NewHandler(db, logger, tokens)))
		api.Mount("/team", teamsfeature.Routes(teamsfeature.NewHandler(db, logger, appCfg.TeamMaxSize), tokens))
		api.Mount("/tasks", tasksfeature.Routes(tasksfeature.NewHandler(db, logger), tokens))
		api.Mount("/admin", adminfeature.Routes(adminfeature.NewHandler(db, logger), tokens))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpjson.NotFound(w, "Route not found")
	})

	return r, nil
}

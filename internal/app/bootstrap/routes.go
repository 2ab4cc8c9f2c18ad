// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	activitiesfeature "github.com/dalemusser/stridedash/internal/app/features/activities"
	cardsfeature "github.com/dalemusser/stridedash/internal/app/features/cards"
	dashboardfeature "github.com/dalemusser/stridedash/internal/app/features/dashboard"
	goalsfeature "github.com/dalemusser/stridedash/internal/app/features/goals"
	healthfeature "github.com/dalemusser/stridedash/internal/app/features/health"
	activitystore "github.com/dalemusser/stridedash/internal/app/store/activity"
	dashboardstore "github.com/dalemusser/stridedash/internal/app/store/dashboard"
	goalstore "github.com/dalemusser/stridedash/internal/app/store/goals"
	kvstore "github.com/dalemusser/stridedash/internal/app/store/kv"
	"github.com/dalemusser/stridedash/internal/app/system/apicors"
	"github.com/dalemusser/stridedash/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, the MongoDB connection, index
// setup, and the Startup hook have completed. The whole surface is a JSON
// API: the configuration stores ride on the kv port, the aggregation engine
// is exercised by the dashboard feature, and everything under /api requires
// the Bearer API key.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Stores: the two configuration stores share the kv document port.
	kv := kvstore.NewMongo(deps.MongoDatabase)
	dashboards := dashboardstore.New(kv)
	goals := goalstore.New(kv)
	activities := activitystore.New(deps.MongoDatabase)

	// Handlers.
	cardsHandler := cardsfeature.NewHandler(dashboards, logger)
	goalsHandler := goalsfeature.NewHandler(goals, logger)
	activitiesHandler := activitiesfeature.NewHandler(activities, logger)
	dashboardHandler := dashboardfeature.NewHandler(dashboards, goals, activities, logger)
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	// API routes: API key auth, permissive CORS, no cookies.
	r.Route("/api", func(api chi.Router) {
		api.Use(apicors.Middleware())
		api.Use(auth.APIKeyAuth(appCfg.APIKey, logger))

		api.Mount("/cards", cardsfeature.Routes(cardsHandler))
		api.Mount("/goals", goalsfeature.Routes(goalsHandler))
		api.Mount("/activities", activitiesfeature.Routes(activitiesHandler))
		api.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))
	})

	// Health endpoints stay unauthenticated for probes.
	r.Mount("/health", healthfeature.Routes(healthHandler))

	return r, nil
}

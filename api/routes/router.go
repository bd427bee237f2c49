package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeanmnorhen/precoreal-backend/api/controllers"
	"github.com/jeanmnorhen/precoreal-backend/api/middleware"
	"github.com/jeanmnorhen/precoreal-backend/pkg/config"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
	"github.com/jeanmnorhen/precoreal-backend/pkg/pubsub"
	"github.com/jeanmnorhen/precoreal-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         db.Pinger
	Redis      *redis.Client
	PubSub     *pubsub.Client
	Registry   *prometheus.Registry
	Permission controllers.PermissionChecker
	Roles      controllers.RoleWriter
	Users      controllers.UserService
	Stores     controllers.StoreService
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.PubSub))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	// The decision endpoint is the product: callers are other services that
	// authenticate at the network layer, so it stays outside the JWT chain.
	r.Get("/api/v1/permissions/check", controllers.PermissionsCheck(deps.Permission, logg))

	r.Route("/internal/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.Internal, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.Post("/roles", controllers.InternalAssignRole(deps.Roles, logg))
		r.Delete("/roles", controllers.InternalRevokeRole(deps.Roles, logg))
	})

	// Registration is open; everything else on the profile surface needs a token.
	r.Post("/api/v1/users", controllers.UserCreate(deps.Users, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/users", func(r chi.Router) {
			r.Get("/{userID}", controllers.UserGet(deps.Users, logg))
			r.Put("/{userID}", controllers.UserUpdate(deps.Users, logg))
			r.Delete("/{userID}", controllers.UserDelete(deps.Users, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Post("/", controllers.StoreCreate(deps.Stores, logg))
			r.Get("/{storeID}", controllers.StoreGet(deps.Stores, logg))
			r.Put("/{storeID}", controllers.StoreUpdate(deps.Stores, logg))
			r.Delete("/{storeID}", controllers.StoreDelete(deps.Stores, logg))
			r.Post("/{storeID}/employees", controllers.StoreAddEmployee(deps.Stores, logg))
			r.Get("/{storeID}/employees", controllers.StoreListEmployees(deps.Stores, logg))
			r.Delete("/{storeID}/employees/{employeeID}", controllers.StoreRemoveEmployee(deps.Stores, logg))
		})
	})

	return r
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/dashboard"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// Dependencies are the collaborators the router hands to controllers. Redis,
// Revoker, HTTPMetrics and Gatherer are optional.
type Dependencies struct {
	DB               controllers.Pinger
	Redis            *redis.Client
	Revoker          *session.Revoker
	AuthService      auth.Service
	DashboardService dashboard.Service
	ProductService   product.Service
	UserService      users.Service
	HTTPMetrics      *metrics.HTTPMetrics
	Gatherer         prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.ClientURL),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	// interfaces stay nil when the optional backends are absent
	var (
		rateStore   middleware.RateLimitStore
		revocations session.RevocationChecker
		revoker     controllers.TokenRevoker
		readiness   = map[string]controllers.Pinger{}
	)
	if deps.DB != nil {
		readiness["database"] = deps.DB
	}
	if deps.Redis != nil {
		rateStore = deps.Redis
		readiness["redis"] = deps.Redis
	}
	if deps.Revoker != nil {
		revocations = deps.Revoker
		revoker = deps.Revoker
	}

	// Load has already rejected malformed entries
	trustedProxies, _ := cfg.AuthRateLimit.TrustedProxyPrefixes()
	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	).WithTrustedProxies(trustedProxies)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	).WithTrustedProxies(trustedProxies)
	forgotPolicy := middleware.NewAuthRateLimitPolicy(
		"forgot",
		cfg.AuthRateLimit.ForgotWindow,
		cfg.AuthRateLimit.ForgotIPLimit,
		cfg.AuthRateLimit.ForgotEmailLimit,
	).WithTrustedProxies(trustedProxies)

	requireAuth := middleware.Auth(cfg.JWT, cfg.Cookie.Name, revocations, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, cfg.Cookie, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, cfg.Cookie, logg))
		r.With(middleware.AuthRateLimit(forgotPolicy, rateStore, logg)).Post("/forgot-password", controllers.AuthForgotPassword(deps.AuthService, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(deps.AuthService, logg))

		r.With(requireAuth).Post("/logout", controllers.AuthLogout(revoker, cfg.Cookie, logg))
		r.With(requireAuth).Get("/me", controllers.AuthMe(logg))
	})

	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
		r.Get("/", controllers.DashboardInfo(deps.DashboardService, logg))
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
		r.Put("/{userId}/status", controllers.UserSetStatus(deps.UserService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/mine", controllers.ProductMine(deps.ProductService, logg))
			r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
			r.Put("/{productId}", controllers.ProductUpdate(deps.ProductService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(deps.ProductService, logg))
		})

		r.Get("/{productId}", controllers.ProductDetail(deps.ProductService, logg))
	})

	return r
}

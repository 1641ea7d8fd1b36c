package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hyun090116/vortex-game-explorer/api/controllers"
	"github.com/hyun090116/vortex-game-explorer/api/middleware"
	"github.com/hyun090116/vortex-game-explorer/internal/auth"
	cartsvc "github.com/hyun090116/vortex-game-explorer/internal/cart"
	checkoutsvc "github.com/hyun090116/vortex-game-explorer/internal/checkout"
	gamesvc "github.com/hyun090116/vortex-game-explorer/internal/games"
	newssvc "github.com/hyun090116/vortex-game-explorer/internal/news"
	postsvc "github.com/hyun090116/vortex-game-explorer/internal/posts"
	purchasesvc "github.com/hyun090116/vortex-game-explorer/internal/purchases"
	usersvc "github.com/hyun090116/vortex-game-explorer/internal/users"
	"github.com/hyun090116/vortex-game-explorer/pkg/auth/session"
	"github.com/hyun090116/vortex-game-explorer/pkg/config"
	"github.com/hyun090116/vortex-game-explorer/pkg/db"
	"github.com/hyun090116/vortex-game-explorer/pkg/logger"
	"github.com/hyun090116/vortex-game-explorer/pkg/metrics"
	"github.com/hyun090116/vortex-game-explorer/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. cmd/api builds one of
// these after bootstrapping the platform clients.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Metrics     http.Handler

	Auth      auth.Service
	Register  auth.RegisterService
	Users     usersvc.Service
	Games     gamesvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Purchases purchasesvc.Service
	Posts     postsvc.Service
	News      newssvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.Checkout.WebOrigin),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg), middleware.Idempotency(d.Redis, logg)).Post("/register", controllers.AuthRegister(d.Register, d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(d.Auth, cfg.JWT, logg))
	})

	// Public storefront reads.
	r.Route("/api/v1/games", func(r chi.Router) {
		r.Get("/", controllers.GamesList(d.Games, logg))
		r.Get("/{slug}", controllers.GameDetail(d.Games, logg))
	})
	r.Route("/api/v1/news", func(r chi.Router) {
		r.Get("/", controllers.NewsList(d.News, logg))
		r.Get("/{newsId}", controllers.NewsDetail(d.News, logg))
	})
	r.Group(func(r chi.Router) {
		r.Get("/api/v1/posts", controllers.PostsList(d.Posts, logg))
		r.Get("/api/v1/posts/{postId}", controllers.PostDetail(d.Posts, logg))
	})

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.Idempotency(d.Redis, logg))

		r.Get("/api/v1/me", controllers.Me(d.Users, logg))
		r.Route("/api/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(d.Users, logg))
			r.Put("/", controllers.ProfileUpdate(d.Users, logg))
		})

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(d.Cart, logg))
			r.Post("/", controllers.CartAdd(d.Cart, d.Games, logg))
			r.Put("/{gameId}", controllers.CartSetQuantity(d.Cart, logg))
			r.Delete("/{gameId}", controllers.CartRemove(d.Cart, logg))
		})

		r.Post("/api/v1/checkout", controllers.CheckoutInitiate(d.Checkout, logg))
		r.Route("/api/v1/payments", func(r chi.Router) {
			r.Post("/confirm", controllers.PaymentConfirm(d.Checkout, logg))
			r.Get("/fail", controllers.PaymentFail(logg))
		})

		r.Get("/api/v1/library", controllers.Library(d.Purchases, logg))
		r.Get("/api/v1/purchases", controllers.PurchaseHistory(d.Purchases, logg))

		r.Post("/api/v1/posts", controllers.PostCreate(d.Posts, logg))
		r.Post("/api/v1/posts/{postId}/comments", controllers.PostCommentCreate(d.Posts, logg))
		r.Post("/api/v1/posts/{postId}/like", controllers.PostLikeToggle(d.Posts, logg))
	})

	return r
}

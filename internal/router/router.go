package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"depot-rest-api/internal/handler"
	"depot-rest-api/internal/middleware"
)

// Config holds the dependencies for building the HTTP router.
type Config struct {
	Logger            *zap.Logger
	Auth              *middleware.Auth
	UserHandler       *handler.UserHandler
	ClientHandler     *handler.ClientHandler
	ProductHandler    *handler.ProductHandler
	RepositoryHandler *handler.RepositoryHandler
	InventoryHandler  *handler.InventoryHandler
	OrderHandler      *handler.OrderHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)

		r.Route("/user", func(r chi.Router) {
			r.Post("/login", cfg.UserHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(cfg.Auth.RequireAdmin)
				r.Get("/get", cfg.UserHandler.Get)
				r.Post("/add", cfg.UserHandler.Insert)
				r.Post("/update", cfg.UserHandler.Update)
				r.Delete("/delete", cfg.UserHandler.Delete)
				r.Get("/get_all", cfg.UserHandler.Page)
			})

			// Staff-side client operations
			r.Route("/cop", func(r chi.Router) {
				r.Use(cfg.Auth.RequireUser)
				r.Get("/", cfg.ClientHandler.GetForStaff)
				r.Post("/", cfg.ClientHandler.ModifyType)
				r.Get("/all", cfg.ClientHandler.All)
				r.Get("/likes", cfg.ClientHandler.ByNameLike)
				r.Get("/specified", cfg.ClientHandler.ByType)
			})
		})

		r.Route("/client", func(r chi.Router) {
			r.Post("/login", cfg.ClientHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(cfg.Auth.RequireClient)
				r.Get("/get", cfg.ClientHandler.GetSelf)
			})

			r.Group(func(r chi.Router) {
				r.Use(cfg.Auth.RequireAdmin)
				r.Post("/add", cfg.ClientHandler.Insert)
				r.Post("/update", cfg.ClientHandler.Update)
			})
		})

		r.Route("/repository", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(cfg.Auth.RequireUser)
				r.Get("/get", cfg.RepositoryHandler.Get)
				r.Post("/add", cfg.RepositoryHandler.Insert)
				r.Post("/update", cfg.RepositoryHandler.Update)
				r.Get("/get_all", cfg.RepositoryHandler.All)
				r.Get("/get_by_name_likes", cfg.RepositoryHandler.ByNameLike)
			})
			r.Group(func(r chi.Router) {
				r.Use(cfg.Auth.RequireAdmin)
				r.Delete("/delete", cfg.RepositoryHandler.Delete)
			})
		})

		r.Route("/product", func(r chi.Router) {
			r.Use(cfg.Auth.RequireUser)
			r.Get("/get", cfg.ProductHandler.Get)
			r.Post("/add", cfg.ProductHandler.Insert)
			r.Post("/update", cfg.ProductHandler.Update)
			r.Get("/get_all", cfg.ProductHandler.All)
			r.Get("/get_page", cfg.ProductHandler.Page)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Use(cfg.Auth.RequireUser)
			r.Get("/of_repo", cfg.InventoryHandler.OfRepository)
			r.Get("/of_product", cfg.InventoryHandler.OfProduct)
			r.Post("/add", cfg.InventoryHandler.Add)
			r.Post("/reduce", cfg.InventoryHandler.Reduce)
		})

		r.Route("/order", func(r chi.Router) {
			r.Use(cfg.Auth.RequireUser)
			r.Get("/", cfg.OrderHandler.Get)
			r.Get("/page", cfg.OrderHandler.PageOfClient)
			r.Post("/add", cfg.OrderHandler.Insert)
			r.Post("/update", cfg.OrderHandler.Update)
		})
	})

	return r
}

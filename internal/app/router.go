package app

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/flower-delivery/internal/app/handlers"
	"github.com/linemk/flower-delivery/internal/lib/logger/handlers/urllog"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/service"
	"github.com/linemk/flower-delivery/internal/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterOptions параметры HTTP API
type RouterOptions struct {
	Policy pricing.DeliveryPolicy
	// ExposeErrors - отдавать текст внутренних ошибок в поле error
	ExposeErrors bool
	Now          func() time.Time
}

// NewRouter собирает сервисы поверх store и регистрирует эндпоинты /api
func NewRouter(log *slog.Logger, store storage.Store, opts RouterOptions) http.Handler {
	orderService := service.NewOrderService(log, store, opts.Policy, opts.Now)
	catalogService := service.NewCatalogService(log, store)

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(recoverer(log))
	router.Use(handlers.ErrorDetails(opts.ExposeErrors))

	router.NotFound(notFound(log))
	router.MethodNotAllowed(notFound(log))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(log, store.Mode(), opts.Now))

		r.Get("/shops", handlers.ShopsHandler(log, catalogService))
		r.Get("/shops/{id}", handlers.ShopHandler(log, catalogService))

		r.Get("/products", handlers.ProductsHandler(log, catalogService))
		r.Get("/products/{id}", handlers.ProductHandler(log, catalogService))
		r.Get("/products/{id}/related", handlers.RelatedProductsHandler(log, catalogService))

		r.Post("/orders", handlers.CreateOrderHandler(log, orderService))
		r.Get("/orders", handlers.OrdersHandler(log, orderService))
		r.Get("/orders/{id}", handlers.OrderHandler(log, orderService))

		r.Get("/search", handlers.SearchHandler(log, catalogService))
		r.Get("/stats", handlers.StatsHandler(log, catalogService))
	})

	return otelhttp.NewHandler(router, "flower-delivery",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func notFound(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, log, http.StatusNotFound, handlers.Response{Message: "Endpoint not found"})
	}
}

// recoverer превращает панику обработчика в ответ 500 в формате API
func recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)
				handlers.WriteJSON(w, log, http.StatusInternalServerError, handlers.Response{Message: "Internal server error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

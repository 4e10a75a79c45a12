package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kasikotas/order/internal/service/models/delivery"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
	"github.com/kasikotas/order/internal/service/models/promocode"
	createorder "github.com/kasikotas/order/internal/transport/http/create_order"
	listorders "github.com/kasikotas/order/internal/transport/http/list_orders"
	orderlimithandler "github.com/kasikotas/order/internal/transport/http/order_limit"
	promocodes "github.com/kasikotas/order/internal/transport/http/promo_codes"
	scheduleddeliveries "github.com/kasikotas/order/internal/transport/http/scheduled_deliveries"
	updatestatus "github.com/kasikotas/order/internal/transport/http/update_status"
	"github.com/kasikotas/order/pkg/http/middleware/trace"
	"github.com/kasikotas/order/pkg/logger"
	"github.com/spf13/viper"
)

type orderService interface {
	PlaceOrder(ctx context.Context, o order.Order) (order.Order, error)
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetOrderByID(ctx context.Context, id int64) (order.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
	GetScheduledOrders(ctx context.Context, from, to *time.Time) ([]order.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	UpdateOrderStatus(ctx context.Context, id int64, next order.Status) (order.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type promoService interface {
	Validate(ctx context.Context, code string, orderCents int64) (*promocode.PromoCode, error)
	Create(ctx context.Context, p promocode.PromoCode) (promocode.PromoCode, error)
	List(ctx context.Context) ([]promocode.PromoCode, error)
	Delete(ctx context.Context, id int64) error
}

type limitService interface {
	Get(ctx context.Context) (*orderlimit.OrderLimit, error)
	Set(ctx context.Context, value int, scope orderlimit.Scope) (orderlimit.OrderLimit, error)
}

type HTTPTransport struct {
	server *http.Server
	router *chi.Mux
	orders orderService
	promos promoService
	limits limitService
	window delivery.Window
}

func NewHTTPTransport(orders orderService, promos promoService, limits limitService, window delivery.Window) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server: server,
		router: router,
		orders: orders,
		promos: promos,
		limits: limits,
		window: window,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/", h.listOrders)
			r.Get("/count", h.countOrders)
			r.Get("/user/{userId}", h.listOrdersByUser)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}/status", h.updateStatus)
			r.Delete("/{id}", h.deleteOrder)
		})

		r.Post("/promo-codes/validate", h.validatePromo)

		r.Route("/admin", func(r chi.Router) {
			r.Route("/promo-codes", func(r chi.Router) {
				r.Post("/", h.createPromo)
				r.Get("/", h.listPromos)
				r.Delete("/{id}", h.deletePromo)
			})

			r.Route("/order-limit", func(r chi.Router) {
				r.Get("/", h.getLimit)
				r.Put("/", h.setLimit)
			})

			r.Route("/scheduled-deliveries", func(r chi.Router) {
				r.Get("/", h.listScheduled)
				r.Get("/range", h.listScheduledRange)
			})
		})

		r.Get("/delivery-slots/available", h.listSlots)
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	listorders.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) countOrders(w http.ResponseWriter, r *http.Request) {
	listorders.CountOrders(w, r, h.orders)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orders)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	updatestatus.DeleteOrder(w, r, h.orders)
}

func (h *HTTPTransport) listOrdersByUser(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrdersByUser(w, r, h.orders)
}

func (h *HTTPTransport) listScheduled(w http.ResponseWriter, r *http.Request) {
	scheduleddeliveries.ListScheduled(w, r, h.orders)
}

func (h *HTTPTransport) listScheduledRange(w http.ResponseWriter, r *http.Request) {
	scheduleddeliveries.ListScheduledRange(w, r, h.orders)
}

func (h *HTTPTransport) listSlots(w http.ResponseWriter, r *http.Request) {
	scheduleddeliveries.ListSlots(w, r, h.window)
}

func (h *HTTPTransport) validatePromo(w http.ResponseWriter, r *http.Request) {
	promocodes.ValidatePromo(w, r, h.promos)
}

func (h *HTTPTransport) createPromo(w http.ResponseWriter, r *http.Request) {
	promocodes.CreatePromo(w, r, h.promos)
}

func (h *HTTPTransport) listPromos(w http.ResponseWriter, r *http.Request) {
	promocodes.ListPromos(w, r, h.promos)
}

func (h *HTTPTransport) deletePromo(w http.ResponseWriter, r *http.Request) {
	promocodes.DeletePromo(w, r, h.promos)
}

func (h *HTTPTransport) getLimit(w http.ResponseWriter, r *http.Request) {
	orderlimithandler.GetLimit(w, r, h.limits)
}

func (h *HTTPTransport) setLimit(w http.ResponseWriter, r *http.Request) {
	orderlimithandler.SetLimit(w, r, h.limits)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}

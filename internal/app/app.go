package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kasikotas/order/internal/dal/postgres"
	"github.com/kasikotas/order/internal/dal/rabbitmq"
	limitrepo "github.com/kasikotas/order/internal/dal/repositories/orderlimit/postgres"
	outboxrepo "github.com/kasikotas/order/internal/dal/repositories/outbox/postgres"
	promorepo "github.com/kasikotas/order/internal/dal/repositories/promocode/postgres"
	"github.com/kasikotas/order/internal/jaeger"
	"github.com/kasikotas/order/internal/service/models/delivery"
	"github.com/kasikotas/order/internal/service/services/limitsvc"
	"github.com/kasikotas/order/internal/service/services/ordersvc"
	"github.com/kasikotas/order/internal/service/services/promosvc"
	httptransport "github.com/kasikotas/order/internal/transport/http"
	outboxworker "github.com/kasikotas/order/internal/worker/outbox"
	schedulerworker "github.com/kasikotas/order/internal/worker/scheduler"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	orderSvc        *ordersvc.OrderService
	transport       *httptransport.HTTPTransport
	postgresClient  *postgres.Client
	rabbitClient    *rabbitmq.Client
	outboxWorker    *outboxworker.Worker
	schedulerWorker *schedulerworker.Worker
	shutdownTracing func(context.Context) error
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	shutdownTracing := jaeger.MustSetupTracing("order-engine")

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	if err := rabbitClient.DeclareExchange(rabbitmq.DeclareExchangeConfig{
		Name:    viper.GetString("rabbitmq.notifications_exchange"),
		Kind:    "topic",
		Durable: true,
	}); err != nil {
		panic("failed to declare notifications exchange: " + err.Error())
	}

	outboxRepository := outboxrepo.NewOutboxRepository(postgresClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithOutboxRepository(outboxRepository),
	)
	promoSvc := promosvc.MustNewPromoCodeService(
		promosvc.WithPromoCodeRepository(promorepo.NewPostgresPromoCodeRepository(postgresClient.Pool())),
	)
	limitSvc := limitsvc.MustNewOrderLimitService(
		limitsvc.WithOrderLimitRepository(limitrepo.NewPostgresOrderLimitRepository(postgresClient.Pool())),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, promoSvc, limitSvc, delivery.DefaultWindow)
	transport.RegisterRoutes()

	return &App{
		orderSvc:        orderSvc,
		transport:       transport,
		postgresClient:  postgresClient,
		rabbitClient:    rabbitClient,
		outboxWorker:    outboxworker.NewWorker(outboxRepository, rabbitClient),
		schedulerWorker: schedulerworker.NewWorker(orderSvc),
		shutdownTracing: shutdownTracing,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())

	go a.outboxWorker.Start(workerCtx)
	go a.schedulerWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	cancelWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.postgresClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if err := a.shutdownTracing(ctx); err != nil {
		slog.Error("Tracer shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}

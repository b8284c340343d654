package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/david1984moore/natalybakery-api/internal/handlers"
	"github.com/david1984moore/natalybakery-api/internal/notifications"
	"github.com/david1984moore/natalybakery-api/internal/payments"
	"github.com/david1984moore/natalybakery-api/internal/platform/auth"
	"github.com/david1984moore/natalybakery-api/internal/platform/config"
	"github.com/david1984moore/natalybakery-api/internal/platform/database"
	"github.com/david1984moore/natalybakery-api/internal/platform/observability"
	"github.com/david1984moore/natalybakery-api/internal/platform/requestctx"
	"github.com/david1984moore/natalybakery-api/internal/repositories/gormdb"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration invalid", zap.Error(err))
	}

	location, err := time.LoadLocation(cfg.Bakery.Timezone)
	if err != nil {
		logger.Fatal("invalid bakery timezone", zap.String("timezone", cfg.Bakery.Timezone), zap.Error(err))
	}

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	orderRepo, err := gormdb.NewOrderRepository(db)
	if err != nil {
		logger.Fatal("order repository init failed", zap.Error(err))
	}
	contactRepo, err := gormdb.NewContactRepository(db)
	if err != nil {
		logger.Fatal("contact repository init failed", zap.Error(err))
	}

	serviceLogger := contextLogger()

	provider, err := payments.NewStripeProvider(payments.StripeProviderConfig{
		APIKey: cfg.Stripe.APIKey,
		Logger: payments.StripeLogger(serviceLogger),
	})
	if err != nil {
		logger.Fatal("stripe provider init failed", zap.Error(err))
	}
	verifier, err := payments.NewStripeWebhookVerifier(cfg.Stripe.WebhookSecret)
	if err != nil {
		logger.Fatal("stripe webhook verifier init failed", zap.Error(err))
	}

	var notifier *notifications.OrderNotifier
	if cfg.Email.SendGridAPIKey != "" {
		mailer, err := notifications.NewSendGridMailer(notifications.SendGridMailerConfig{
			APIKey:      cfg.Email.SendGridAPIKey,
			FromName:    cfg.Email.FromName,
			FromAddress: cfg.Email.FromAddress,
		})
		if err != nil {
			logger.Fatal("mailer init failed", zap.Error(err))
		}
		notifier, err = notifications.NewOrderNotifier(notifications.OrderNotifierConfig{
			Mailer:       mailer,
			StaffAddress: cfg.Email.StaffAddress,
			AdminBaseURL: cfg.Admin.BaseURL,
			Logger:       notifications.NotifierLogger(serviceLogger),
		})
		if err != nil {
			logger.Fatal("notifier init failed", zap.Error(err))
		}
	} else {
		logger.Warn("SENDGRID_API_KEY not set; email notifications disabled")
	}

	tokens, err := auth.NewTokenManager(auth.TokenManagerConfig{
		Secret: cfg.Admin.JWTSecret,
		TTL:    cfg.Admin.TokenTTL,
	})
	if err != nil {
		logger.Fatal("token manager init failed", zap.Error(err))
	}

	numbers := services.NewOrderNumberGenerator("NB", nil)

	checkoutService, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Orders:        orderRepo,
		Payments:      provider,
		Numbers:       numbers,
		Currency:      cfg.Bakery.Currency,
		IntentTimeout: cfg.Stripe.Timeout,
		Logger:        serviceLogger,
	})
	if err != nil {
		logger.Fatal("checkout service init failed", zap.Error(err))
	}

	orderService, err := services.NewOrderService(services.OrderServiceDeps{
		Orders:     orderRepo,
		Notifier:   notifierOrNil(notifier),
		Numbers:    numbers,
		Location:   location,
		CutoffHour: cfg.Bakery.CutoffHour,
		Logger:     serviceLogger,
	})
	if err != nil {
		logger.Fatal("order service init failed", zap.Error(err))
	}

	webhookService, err := services.NewPaymentWebhookService(services.PaymentWebhookServiceDeps{
		Orders:   orderRepo,
		Verifier: verifier,
		Notifier: notifierOrNil(notifier),
		Logger:   serviceLogger,
	})
	if err != nil {
		logger.Fatal("webhook service init failed", zap.Error(err))
	}

	contactService, err := services.NewContactService(services.ContactServiceDeps{
		Contacts: contactRepo,
		Notifier: notifierOrNil(notifier),
		Logger:   serviceLogger,
	})
	if err != nil {
		logger.Fatal("contact service init failed", zap.Error(err))
	}

	adminHandlers := handlers.NewAdminHandlers(handlers.AdminHandlersConfig{
		Tokens:   tokens,
		Password: cfg.Admin.Password,
		Orders:   orderService,
		Contacts: contactService,
	})

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
		),
		handlers.WithHealthHandlers(handlers.NewHealthHandlers(database.Ping)),
		handlers.WithCheckoutRoutes(handlers.NewCheckoutHandlers(checkoutService).Routes),
		handlers.WithOrderRoutes(handlers.NewOrderHandlers(orderService).Routes),
		handlers.WithContactRoutes(handlers.NewContactHandlers(contactService).Routes),
		handlers.WithAdminRoutes(adminHandlers.Routes),
		handlers.WithWebhookRoutes(handlers.NewWebhookHandlers(webhookService).Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("natalybakery api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// contextLogger resolves the per-request zap logger from context so service
// events share the request_id of the request that caused them.
func contextLogger() services.Logger {
	return func(ctx context.Context, event string, fields map[string]any) {
		zapFields := make([]zap.Field, 0, len(fields))
		for key, value := range fields {
			zapFields = append(zapFields, zap.Any(key, value))
		}
		requestctx.Logger(ctx).Info(event, zapFields...)
	}
}

// notifierOrNil keeps a typed-nil *OrderNotifier from sneaking into the
// services.Notifier interface.
func notifierOrNil(n *notifications.OrderNotifier) services.Notifier {
	if n == nil {
		return nil
	}
	return n
}

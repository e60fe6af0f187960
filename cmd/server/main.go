package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/patungan/internal/auth"
	"github.com/mmynk/patungan/internal/config"
	"github.com/mmynk/patungan/internal/middleware"
	"github.com/mmynk/patungan/internal/service"
	"github.com/mmynk/patungan/internal/storage/sqlite"
	"github.com/mmynk/patungan/pkg/api/apiconnect"
	"github.com/mmynk/patungan/pkg/logging"
)

func main() {
	logger := logging.Setup()

	if err := run(logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DB.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization", "Content-Type",
			"Connect-Protocol-Version", "Connect-Timeout-Ms",
			"Grpc-Timeout", "X-Grpc-Web", "X-User-Agent",
		},
		ExposedHeaders: []string{
			"Connect-Protocol-Version", "Connect-Timeout-Ms",
			"Grpc-Status", "Grpc-Message", "Grpc-Status-Details-Bin",
		},
		MaxAge: 7200,
	}))

	// Metrics wrap everything; auth runs before logging so logs carry the user.
	interceptors := func(authn connect.Interceptor) connect.HandlerOption {
		return connect.WithInterceptors(
			middleware.MetricsInterceptor(),
			authn,
			middleware.LoggingInterceptor(logger),
		)
	}

	billPath, billHandler := apiconnect.NewBillServiceHandler(
		service.NewBillService(store, logger),
		interceptors(middleware.RequireAuth(jwtManager, apiconnect.BillServiceCalculateProcedure)),
	)
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(
		service.NewGroupService(store, logger),
		interceptors(middleware.RequireAuth(jwtManager)),
	)
	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, logger),
		interceptors(middleware.OptionalAuth(jwtManager)),
	)
	r.Handle(billPath+"*", billHandler)
	r.Handle(groupPath+"*", groupHandler)
	r.Handle(authPath+"*", authHandler)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Warn("Health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	// h2c serves HTTP/2 without TLS, which gRPC clients require.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h2c.NewHandler(r, &http2.Server{}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

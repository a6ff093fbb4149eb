package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry-be/internal/auth"
	"laundry-be/internal/catalog"
	"laundry-be/internal/config"
	"laundry-be/internal/db"
	"laundry-be/internal/inventory"
	"laundry-be/internal/logger"
	"laundry-be/internal/member"
	"laundry-be/internal/metrics"
	"laundry-be/internal/middleware"
	"laundry-be/internal/notification"
	"laundry-be/internal/order"
	"laundry-be/internal/scheduler"
	"laundry-be/internal/stats"
	"laundry-be/internal/transport"
	"laundry-be/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = setupDatabase
	startServerFunc = func(srv *http.Server) error {
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.InitWithFile(cfg.AppEnv, cfg.LogFile)
	defer logger.Sync()

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	app := newServer(cfg, database)
	if err := app.sched.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("Laundry API running", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		<-app.sched.Stop().Done()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	<-app.sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupDatabase connects, migrates and optionally seeds the database.
func setupDatabase(cfg *config.Config) (*sql.DB, error) {
	database := db.InitDB(cfg)

	ctx := context.Background()
	if err := db.Migrate(ctx, database, "up"); err != nil {
		database.Close()
		return nil, err
	}
	if cfg.SeedData {
		if err := db.Seed(ctx, database); err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}

type application struct {
	router http.Handler
	sched  *scheduler.Scheduler
}

func (a *application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

func newServer(cfg *config.Config, database *sql.DB) *application {
	issuer := auth.NewTokenIssuer(cfg.JWTSecret)
	dispatchStats := metrics.NewDispatch()

	userSvc := user.NewService(user.NewRepository(database), issuer)
	catalogSvc := catalog.NewService(catalog.NewRepository(database))

	inventoryRepo := inventory.NewRepository(database)
	materialRepo := inventory.NewMaterialRepository(database)
	inventorySvc := inventory.NewService(inventoryRepo)
	materialSvc := inventory.NewMaterialService(materialRepo)

	memberSvc := member.NewService(member.NewRepository(database))

	dispatcher := notification.NewDispatcher(database, dispatchStats)
	notificationSvc := notification.NewService(notification.NewRepository(database))

	orderSvc := order.NewService(order.NewRepository(database), dispatcher, materialRepo)
	statsSvc := stats.NewService(stats.NewRepository(database))

	router := setupRouter(cfg, healthHandler(database, dispatchStats), issuer,
		user.NewHandler(userSvc, cfg.IsProduction()),
		catalog.NewHandler(catalogSvc),
		inventory.NewHandler(inventorySvc, materialSvc),
		member.NewHandler(memberSvc),
		order.NewHandler(orderSvc),
		notification.NewHandler(notificationSvc),
		stats.NewHandler(statsSvc),
	)

	return &application{
		router: router,
		sched:  scheduler.New(dispatcher, inventoryRepo, notificationSvc),
	}
}

func setupRouter(cfg *config.Config, health http.HandlerFunc, tokens middleware.TokenParser, users *user.Handler, protected ...routeRegistrar) http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	public := middleware.RateLimit(middleware.PublicTier)
	r.With(public).Get("/health", health)

	r.Route("/api", func(r chi.Router) {
		r.With(public).Get("/health", health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(middleware.LoginTier))
			users.RegisterPublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Use(middleware.RateLimit(middleware.SessionTier))
			users.RegisterRoutes(r)
			for _, h := range protected {
				h.RegisterRoutes(r)
			}
		})
	})

	return r
}

type healthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Database  string                   `json:"database"`
	Dispatch  metrics.DispatchSnapshot `json:"dispatch"`
}

func healthHandler(database *sql.DB, dispatchStats *metrics.Dispatch) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := "connected"
		if err := database.PingContext(r.Context()); err != nil {
			logger.FromCtx(r.Context()).Warn("health ping failed", zap.Error(err))
			state = "disconnected"
		}

		transport.WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  state,
			Dispatch:  dispatchStats.Snapshot(),
		})
	}
}

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

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logging.New("barber-booking", cfg.LogLevel)
	slog.SetDefault(log)

	timezone.SetDefault(cfg.Timezone)

	// ======================================================
	// 🔧 STORE + AUDIT
	// ======================================================
	var (
		repo     domain.Repository
		store    audit.Store
		fallback cache.Cache = cache.NewNoop()
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		mem := infraRepo.NewAppointmentMemoryRepository(cfg.BookingLockTimeout)
		infraRepo.SeedDemo(mem)
		repo = mem
		store = audit.NewMemoryStore(audit.NewSlogSink(log), 0)
		// processo único: cache local é seguro
		fallback = cache.NewMemory()
		log.Warn("running with in-memory store, data is lost on exit")

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Error("database init failed", slog.Any("err", err))
			os.Exit(1)
		}
		repo = infraRepo.NewAppointmentGormRepository(db, cfg.BookingLockTimeout)
		store = audit.New(db)
	}

	dispatcher := audit.NewDispatcher(store)

	// ======================================================
	// 🔧 CACHE
	// ======================================================
	var availabilityStore cache.Cache = fallback
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err = rc.Ping(pingCtx)
			cancel()
		}
		if err != nil {
			log.Warn("redis unavailable, availability cache degraded", slog.Any("err", err))
		} else {
			availabilityStore = rc
			defer rc.Close()
		}
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.New()
	if err := routes.RegisterRoutes(r, routes.Deps{
		Config:      cfg,
		Log:         log,
		Repo:        repo,
		Cache:       ucAppointment.NewAvailabilityCache(availabilityStore, cfg.AvailabilityCacheTTL),
		Audit:       dispatcher,
		AuditReader: store,
	}); err != nil {
		log.Error("routes init failed", slog.Any("err", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("server started",
		slog.String("addr", cfg.Addr()),
		slog.String("store", cfg.StoreDriver),
		slog.String("timezone", timezone.Location().String()),
	)

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped with error", slog.Any("err", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", slog.Any("err", err))
	}

	// drena a fila de auditoria antes de sair
	dispatcher.Close()
	log.Info("bye")
}

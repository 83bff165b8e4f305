package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "shiptix/internal/config"
	router "shiptix/internal/http"
	intdb "shiptix/internal/db"
	"shiptix/internal/http/handlers"
	"shiptix/internal/repositories"
	"shiptix/internal/services"
	"shiptix/internal/session"
	"shiptix/internal/utils"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		// logger is not up yet
		zap.NewExample().Fatal("konfigurasi tidak valid", zap.Error(err))
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.InitLogger(gin.Mode() != gin.ReleaseMode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := utils.LoadLocation(env.Timezone)
	if err != nil {
		logger.Fatal("zona waktu tidak dikenal", zap.String("tz", env.Timezone), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, env)
	if err != nil {
		logger.Fatal("gagal menyiapkan data source", zap.String("data_source", env.DataSource), zap.Error(err))
	}
	defer intconfig.CloseDB()

	sessions, closeSessions, err := openSessions(ctx, env)
	if err != nil {
		logger.Fatal("gagal menyiapkan session store", zap.String("backend", env.SessionBackend), zap.Error(err))
	}
	defer closeSessions()

	refs := repositories.NewReferenceCache(store, store, time.Minute)
	finder := repositories.SnapshotReader{Schedules: store, Refs: refs}
	loader := services.NewResultsLoader(finder, sessions, env.SearchTimeout, loc)
	defer loader.Close()

	hd := &handlers.Handler{
		Store:    store,
		Refs:     refs,
		Sessions: sessions,
		Loader:   loader,
		Auth: services.AuthService{
			Users:  store,
			Secret: []byte(env.JWTSecret),
			TTL:    env.JWTTTL,
		},
		Counter:         services.PassengerCounter{Policy: services.ParsePassengerPolicy(env.PassengerPolicy)},
		DefaultLocation: loc,
		DataSource:      env.DataSource,
	}
	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server berjalan", zap.String("addr", env.AppAddr),
			zap.String("data_source", env.DataSource), zap.String("session", env.SessionBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Gagal menjalankan server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Mematikan server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown server gagal", zap.Error(err))
		return
	}
	logger.Info("Server berhenti dengan aman.")
}

func openStore(ctx context.Context, env intconfig.Env) (repositories.Store, error) {
	if env.DataSource == "mysql" {
		db, err := intconfig.ConnectDB(env.DB)
		if err != nil {
			return nil, err
		}
		if _, err := intdb.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		return repositories.NewMySQLStore(db), nil
	}

	data, err := repositories.DemoSeed(time.Now())
	if err != nil {
		return nil, err
	}
	store := repositories.NewMemoryStore()
	store.Seed(data)
	return store, nil
}

func openSessions(ctx context.Context, env intconfig.Env) (session.Store, func(), error) {
	if env.SessionBackend == "redis" {
		client, err := intconfig.ConnectRedis(ctx, env.Redis)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, env.SessionTTL), func() { _ = client.Close() }, nil
	}

	mem := session.NewMemoryStore(env.SessionTTL)
	sweepCtx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := mem.Sweep(); n > 0 {
					utils.L().Debug("session sweep", zap.Int("expired", n))
				}
			}
		}
	}()
	return mem, cancel, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pribylovaa/pokedex-api/internal/cache"
	"github.com/pribylovaa/pokedex-api/internal/catalog"
	"github.com/pribylovaa/pokedex-api/internal/clock"
	"github.com/pribylovaa/pokedex-api/internal/config"
	apihttp "github.com/pribylovaa/pokedex-api/internal/http"
	"github.com/pribylovaa/pokedex-api/internal/http/handlers"
	"github.com/pribylovaa/pokedex-api/internal/metrics"
	"github.com/pribylovaa/pokedex-api/internal/pkg/log"
	"github.com/pribylovaa/pokedex-api/internal/revocation"
	"github.com/pribylovaa/pokedex-api/internal/service"
	"github.com/pribylovaa/pokedex-api/internal/storage/mongo"
	"github.com/pribylovaa/pokedex-api/internal/token"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := setupLogger(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting pokedex-api", "env", cfg.Env)

	// Кодек проверяем до открытия любых соединений: слабый ключ — отказ старта.
	clk := clock.System{}
	codec, err := token.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer, clk)
	if err != nil {
		lg.Error("token_codec_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	// Хранилище отзыва и его фоновая чистка.
	revoked := revocation.New(clk, cfg.Auth.Shards)
	go revoked.RunJanitor(log.Into(rootCtx, lg), cfg.Auth.SweepInterval)

	str, err := mongo.New(rootCtx, cfg)
	if err != nil {
		lg.Error("mongo_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	lg.Info("mongo_connected")

	cat, err := catalog.New(&http.Client{Timeout: cfg.Catalog.Timeout}, cfg.Catalog.BaseURL)
	if err != nil {
		lg.Error("catalog_init_failed", slog.String("err", err.Error()))
		_ = str.Close(context.Background())
		rootCancel()
		os.Exit(1)
	}

	srvc := service.New(str, codec, revoked, cat, clk)
	srvc.SetMaxConcurrent(cfg.Catalog.MaxConcurrent)

	// Кэш каталога опционален: недоступный Redis на старте не валит сервис.
	var pc cache.PokemonCache
	if cfg.Redis.URL != "" {
		pingCtx, pingCancel := context.WithTimeout(rootCtx, 5*time.Second)
		pc, err = cache.NewRedisCache(pingCtx, cfg.Redis.URL, cache.DefaultPrefix)
		pingCancel()
		if err != nil {
			lg.Warn("redis_unavailable_cache_disabled", slog.String("err", err.Error()))
			pc = nil
		} else {
			srvc.SetCache(pc, cfg.Redis.TTL)
			lg.Info("redis_connected")
		}
	}
	lg.Info("service_initialized")

	m := metrics.New(revoked.Len)

	apiHandler := apihttp.NewRouter(handlers.New(srvc, srvc), srvc, m, apihttp.Options{
		Logger:   lg,
		Timeout:  cfg.Timeouts.Service,
		BasePath: cfg.HTTP.BasePath,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := str.Ping(ctx); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", m.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		lg.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		_ = str.Close(context.Background())
		rootCancel()
		os.Exit(1)
	}

	lg.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	lg.Info("service_ready")

	select {
	case <-rootCtx.Done():
		lg.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			lg.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)
	rootCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		lg.Info("http_stopped")
	}

	if pc != nil {
		if err := pc.Close(); err != nil {
			lg.Warn("redis_close_failed", slog.String("err", err.Error()))
		}
	}

	if err := str.Close(shutdownCtx); err != nil {
		lg.Warn("mongo_close_failed", slog.String("err", err.Error()))
	}

	lg.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

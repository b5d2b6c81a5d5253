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

	"github.com/rs/zerolog"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/authz"
	"github.com/nurpe/contracts-admin/internal/config"
	"github.com/nurpe/contracts-admin/internal/db"
	httphandler "github.com/nurpe/contracts-admin/internal/http"
	"github.com/nurpe/contracts-admin/internal/logger"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/repository"
	"github.com/nurpe/contracts-admin/internal/resource"
	"github.com/nurpe/contracts-admin/internal/service"
	"github.com/nurpe/contracts-admin/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, err := apiclient.New(
		apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		apiclient.WithLogger(log.With().Str("component", "apiclient").Logger()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init backend client")
	}

	store, err := sessionStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init session store")
	}
	sessions := session.NewManager(store, session.Config{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.IsProduction(),
	}, log)

	registry := query.NewRegistry(log)
	go sweep(ctx, registry, sessions, cfg.Cache.IdleTTL, log)

	enforcer, err := authz.New(cfg.Authz.EditorRoles, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init authorization")
	}
	if err := enforcer.GrantRules(cfg.Authz.Grants); err != nil {
		log.Fatal().Err(err).Msg("invalid AUTHZ_GRANTS")
	}

	res := resource.New(api, resource.Policy{Reference: cfg.Cache.ReferenceStale, List: cfg.Cache.ListStale})
	handler := httphandler.NewHandler(res, service.NewAuthService(api), sessions, registry, enforcer, httphandler.Options{
		PageSize:      cfg.Table.PageSize,
		PageSizes:     cfg.Table.PageSizes,
		ExpiringDays:  cfg.Dashboard.ExpiringDays,
		SecureCookies: cfg.IsProduction(),
	}, log)

	router, err := httphandler.NewRouter(handler, cfg.Environment, cfg.CORS.AllowedOrigins)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init router")
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("backend", cfg.API.BaseURL).Msg("starting contracts admin")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

// sessionStore keeps sessions in Postgres when a DSN is configured.
func sessionStore(cfg *config.Config, log zerolog.Logger) (session.Store, error) {
	if cfg.DB.DSN == "" {
		log.Info().Msg("using in-memory session store")
		return session.NewMemoryStore(), nil
	}
	database, err := db.New(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	return repository.NewSessionRepository(database), nil
}

// sweep drops idle per-session caches and expired session records.
func sweep(ctx context.Context, registry *query.Registry, sessions *session.Manager, idle time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped := registry.Sweep(idle)
			purged, err := sessions.Purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge sessions failed")
			}
			if dropped > 0 || purged > 0 {
				log.Debug().Int("caches", dropped).Int64("sessions", purged).Msg("swept idle state")
			}
		}
	}
}

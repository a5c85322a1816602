package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadechat/room-broker/config"
	"github.com/fadechat/room-broker/internal/security"
	"github.com/fadechat/room-broker/internal/service"
	"github.com/fadechat/room-broker/internal/store"
	httpx "github.com/fadechat/room-broker/internal/transport/http"
	"github.com/fadechat/room-broker/internal/transport/ws"
	"github.com/fadechat/room-broker/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting room-broker",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- identifier generators ---
	newCode, err := security.NewGenerator(cfg.Rooms.CodeLength)
	if err != nil {
		log.Fatalf("room code generator: %v", err)
	}
	newSessionID, err := security.NewGenerator(cfg.Rooms.SessionIDLength)
	if err != nil {
		log.Fatalf("session id generator: %v", err)
	}

	// --- registries ---
	rooms := store.NewRoomStore(newCode)
	sessions := store.NewSessionStore(newSessionID)

	threshold := cfg.Rooms.InactivityThresholdDuration()

	// --- WS hub, router, reaper ---
	hub := ws.NewHub()
	eventRouter := service.NewEventRouter(rooms, sessions, hub, threshold)
	reaper := service.NewReaper(rooms, hub, cfg.Rooms.SweepIntervalDuration(), threshold)
	wsServer := ws.NewServer(eventRouter)

	// --- HTTP ---
	roomSvc := service.NewRoomService(rooms, sessions, threshold)
	handler := httpx.NewHandler(roomSvc)
	router := httpx.NewRouter(handler, wsServer, cfg.CORS.AllowedOrigins)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- run server and reaper under one lifecycle ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return reaper.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(ctxShutdown)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "err", err)
	}
	slog.Info("stopped")
}

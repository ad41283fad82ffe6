package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jasamarga/toll-ops-gateway/config"
	"github.com/jasamarga/toll-ops-gateway/internal/adapter/http/handler"
	httpserver "github.com/jasamarga/toll-ops-gateway/internal/adapter/http/server"
	"github.com/jasamarga/toll-ops-gateway/internal/adapter/postgres"
	rabbitconsumer "github.com/jasamarga/toll-ops-gateway/internal/adapter/rabbit"
	"github.com/jasamarga/toll-ops-gateway/internal/adapter/upstream"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/service/export"
	"github.com/jasamarga/toll-ops-gateway/internal/service/gate"
	"github.com/jasamarga/toll-ops-gateway/internal/service/report"
	"github.com/jasamarga/toll-ops-gateway/internal/service/session"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	postgresclient "github.com/jasamarga/toll-ops-gateway/pkg/postgres"
	rabbitclient "github.com/jasamarga/toll-ops-gateway/pkg/rabbit"
	wsHub "github.com/jasamarga/toll-ops-gateway/pkg/wsHub"
)

type App struct {
	postgresDB *postgresclient.PostgreDB
	rabbitMQ   *rabbitclient.RabbitMQ
	hub        *wsHub.ConnectionHub
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

// NewApplication wires the gateway: the persistent credential store,
// the upstream client, the domain services and the HTTP server. The
// Postgres store and the RabbitMQ consumer are optional by config.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	app := &App{
		cfg: cfg,
		log: log,
	}

	// persistent credential store
	var devices store.DeviceStore
	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		db, err := postgresclient.New(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.postgresDB = db
		devices = postgres.NewCredentialRepo(db.Pool)
	default:
		devices = store.NewMemoryDeviceStore()
	}

	apiClient := upstream.New(cfg.Upstream.BaseURL, cfg.App.Name, cfg.Upstream.Timeout, log)

	// services
	controller := session.NewController(apiClient, cfg.App.Name, log)
	reports := report.New(apiClient, log)
	exports := export.New(reports, cfg.App.Name, log)
	gates := gate.New(apiClient, log)
	sessions := handler.NewSessions(devices, cfg.Session.CookieMaxAge, log)

	// live refresh, only when a broker is configured
	var wsHandler *handler.DashboardWS
	if cfg.RabbitMQ.Enabled {
		rmq, err := rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			return nil, err
		}
		app.rabbitMQ = rmq
		app.hub = wsHub.NewConnHub(log)
		wsHandler = handler.NewDashboardWS(app.hub, cfg.App.Name, log)

		consumer := rabbitconsumer.NewTrafficConsumer(rmq, cfg.App.Name)
		err = consumer.ConsumeTrafficUpdates(ctx, func(ctx context.Context, msg models.TrafficUpdatedMessage) error {
			app.hub.Broadcast(map[string]any{
				"type":       "lalin_updated",
				"tanggal":    msg.Tanggal,
				"id_cabang":  msg.IdCabang,
				"id_gerbang": msg.IdGerbang,
				"shift":      msg.Shift,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	server, err := httpserver.New(cfg, httpserver.Deps{
		Controller: controller,
		Reports:    reports,
		Exports:    exports,
		Gates:      gates,
		Sessions:   sessions,
		WS:         wsHandler,
	}, log)
	if err != nil {
		return nil, err
	}
	app.httpServer = server

	return app, nil
}

// Run starts the HTTP server and blocks until a shutdown signal or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "gateway closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "gateway started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	if a.hub != nil {
		a.hub.Close()
	}
	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Error(ctx, "failed to close RabbitMQ connection", err)
		}
	}
	if a.postgresDB != nil {
		a.postgresDB.Pool.Close()
	}
}

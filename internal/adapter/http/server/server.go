package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jasamarga/toll-ops-gateway/config"
	"github.com/jasamarga/toll-ops-gateway/internal/adapter/http/handler"
	"github.com/jasamarga/toll-ops-gateway/internal/adapter/http/middleware"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

const serverIPAddress = "%s:%s"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	auth    *handler.Auth
	report  *handler.Report
	export  *handler.Export
	gerbang *handler.Gerbang
	pages   *handler.Pages
	ws      *handler.DashboardWS
	health  *handler.Health
}

type Deps struct {
	Controller handler.SessionController
	Reports    handler.ReportService
	Exports    handler.ExportService
	Gates      handler.GateService
	Sessions   *handler.Sessions
	WS         *handler.DashboardWS
}

func New(cfg config.Config, deps Deps, log logger.Logger) (*API, error) {
	if deps.Controller == nil {
		return nil, errors.New("session controller is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("session factory is required")
	}

	routes := &handlers{
		auth:    handler.NewAuth(deps.Controller, deps.Sessions, log),
		report:  handler.NewReport(deps.Reports, deps.Sessions, log),
		export:  handler.NewExport(deps.Exports, deps.Sessions, log),
		gerbang: handler.NewGerbang(deps.Gates, deps.Sessions, log),
		pages:   handler.NewPages(log),
		ws:      deps.WS,
		health:  handler.NewHealth(cfg.App.Name, log),
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(cfg.App.Name, log),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.App.Port),
		cfg:    cfg,
		log:    log,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware wraps the mux with the ambient chain; the route guard
// runs innermost so redirects see the device cookie.
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Metrics(a.m.Logging(a.m.DeviceID(a.m.Guard(a.mux))))))
}

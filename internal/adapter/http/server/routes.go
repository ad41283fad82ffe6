package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes wires the page shells, the JSON API the pages consume and
// the infrastructure endpoints.
func (a *API) setupRoutes() {
	mux := a.mux

	// system
	mux.HandleFunc("/health", a.routes.health.HealthCheck)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName("dashboard")))

	// pages (behind the route guard)
	mux.HandleFunc("GET /login", a.routes.pages.Login)
	mux.HandleFunc("GET /dashboard", a.routes.pages.Dashboard)
	mux.HandleFunc("GET /trafficlight", a.routes.pages.TrafficReport)
	mux.HandleFunc("GET /master-gerbang", a.routes.pages.MasterGerbang)

	// session
	mux.HandleFunc("POST /api/auth/login", a.routes.auth.Login)
	mux.HandleFunc("POST /api/auth/logout", a.routes.auth.Logout)
	mux.HandleFunc("GET /api/auth/me", a.routes.auth.Me)

	// reports
	mux.HandleFunc("GET /api/dashboard/summary", a.routes.report.Summary)
	mux.HandleFunc("GET /api/reports/lalins", a.routes.report.Lalins)
	mux.HandleFunc("GET /api/reports/clusters", a.routes.report.Clusters)
	mux.HandleFunc("GET /api/reports/export", a.routes.export.Daily)

	// gate master data
	mux.HandleFunc("GET /api/gerbangs", a.routes.gerbang.List)
	mux.HandleFunc("POST /api/gerbangs", a.routes.gerbang.Create)
	mux.HandleFunc("PUT /api/gerbang/{id}", a.routes.gerbang.Update)
	mux.HandleFunc("DELETE /api/gerbangs", a.routes.gerbang.Delete)

	// live refresh
	if a.routes.ws != nil {
		mux.HandleFunc("GET /ws/dashboard", a.routes.ws.Serve)
	}
}

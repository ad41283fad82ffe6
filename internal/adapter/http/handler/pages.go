package handler

import (
	"html/template"
	"net/http"

	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

// pageTemplate is the shared shell for the dashboard pages. The real
// UI is rendered client-side; the shell only carries the page identity
// and the websocket endpoint for live refresh.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - Jasa Marga</title>
</head>
<body>
<div id="root" data-page="{{.Page}}" data-ws="/ws/dashboard"></div>
<script src="/static/app.js" defer></script>
</body>
</html>
`))

type pageData struct {
	Title string
	Page  string
}

type Pages struct {
	log logger.Logger
}

func NewPages(log logger.Logger) *Pages {
	return &Pages{log: log}
}

func (h *Pages) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.log.Error(r.Context(), "failed to render page", err, "page", data.Page)
	}
}

func (h *Pages) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{Title: "Masuk", Page: "login"})
}

func (h *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{Title: "Dashboard", Page: "dashboard"})
}

func (h *Pages) TrafficReport(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{Title: "Laporan Lalu Lintas Harian", Page: "trafficlight"})
}

func (h *Pages) MasterGerbang(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{Title: "Master Data Gerbang", Page: "master-gerbang"})
}

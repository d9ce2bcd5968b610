package handlers

import (
	"net/http"
	"time"

	"github.com/xavierca1/ligue-leads/internal/config"
)

type HealthHandler struct {
	Cfg       config.Config
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(cfg config.Config) *HealthHandler {
	return &HealthHandler{
		Cfg:       cfg,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Planilha
	if h.Cfg.SheetID != "" || h.Cfg.SheetURL != "" {
		deps["sheet"] = "configured"
	} else {
		deps["sheet"] = "not configured"
	}

	// SMTP
	switch {
	case !h.Cfg.EmailEnabled:
		deps["smtp"] = "disabled"
	case h.Cfg.SMTPUser != "":
		deps["smtp"] = "configured"
	default:
		deps["smtp"] = "not configured"
	}

	status := "healthy"
	if deps["sheet"] == "not configured" {
		status = "degraded"
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

package handlers

import "net/http"

const serviceName = "ligue-leads"

type StatusHandler struct {
	Env string
}

func NewStatusHandler(env string) *StatusHandler {
	return &StatusHandler{Env: env}
}

func (h *StatusHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"hint":    "use /status (GET) e /webhook (GET verify | POST eventos)",
	})
}

func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"env":     h.Env,
	})
}

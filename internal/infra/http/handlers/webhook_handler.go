package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadProcessor interface {
	Execute(ctx context.Context, payload []byte) usecase.ProcessResult
}

type WebhookHandler struct {
	Processor   LeadProcessor
	VerifyToken string
}

func NewWebhookHandler(processor LeadProcessor, verifyToken string) *WebhookHandler {
	return &WebhookHandler{
		Processor:   processor,
		VerifyToken: verifyToken,
	}
}

// HandleVerify responde à verificação do Meta (GET /webhook): ecoa o
// hub.challenge quando o verify_token bate.
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && h.VerifyToken != "" && token == h.VerifyToken {
		log.Println("✅ Webhook verificado (GET /webhook)")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	if mode != "" {
		// veio tentativa de verificação mas o token não bateu
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"hint": "POST your WhatsApp webhook payload here",
	})
}

// Handle processa o evento (POST /webhook). A resposta é sempre 200 com o
// erro embutido no corpo: sinalizar falha aqui faria o Meta reentregar o
// evento em loop.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusOK, usecase.ProcessResult{Status: "error", Error: "read_failed"})
		return
	}

	log.Println("POST /webhook recebido")
	result := h.Processor.Execute(r.Context(), body)

	middleware.RecordWebhookResult(result.Status)
	switch result.Status {
	case "ok":
		middleware.RecordLeadStored("created")
	case "dedupe":
		middleware.RecordLeadStored("updated")
	}
	if result.EmailStatus != "" {
		middleware.RecordLeadEmail(result.EmailStatus)
	}
	if result.Error == usecase.ErrCodeUpsertFailed {
		middleware.RecordSheetError("upsert")
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

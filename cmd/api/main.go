package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	appmiddleware "github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/sheets"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	if cfg.SheetID == "" && cfg.SheetURL == "" {
		log.Println("⚠️ SHEET_ID/SHEET_URL não configurados; gravações na planilha vão falhar")
	}

	// 1. Adapters
	store := sheets.NewStore(cfg)
	mailSender := mail.NewEmailSender(cfg)

	// 2. UseCase
	processLead := usecase.NewProcessLeadUseCase(store, mailSender, cfg)

	// 3. Handlers
	webhookHandler := handlers.NewWebhookHandler(processLead, cfg.VerifyToken)
	statusHandler := handlers.NewStatusHandler(cfg.Env)
	healthHandler := handlers.NewHealthHandler(cfg)

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/", statusHandler.HandleHome)
	r.Get("/status", statusHandler.HandleStatus)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/webhook", webhookHandler.HandleVerify)
	r.Post("/webhook", webhookHandler.Handle)

	addr := ":" + cfg.Port
	log.Printf("🔥 ligue-leads rodando | env=%s | porta %s", cfg.Env, addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-leads/internal/config"
)

const timestampLayout = "2006-01-02 15:04:05"

// ProcessLeadUseCase é o pipeline completo de um evento do webhook:
// extração -> dedupe por wamid -> upsert provisório (pending/skipped) ->
// e-mail -> upsert final (sent/error/skipped + updated_at).
type ProcessLeadUseCase struct {
	Store    LeadStore
	Notifier LeadNotifier
	Columns  config.ColumnMapping
	Dedupe   bool
	Prefix   string
	Location *time.Location
	Now      func() time.Time
}

func NewProcessLeadUseCase(store LeadStore, notifier LeadNotifier, cfg config.Config) *ProcessLeadUseCase {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("⚠️ TZ %q inválido, usando horário local: %v", cfg.Timezone, err)
		loc = time.Local
	}
	return &ProcessLeadUseCase{
		Store:    store,
		Notifier: notifier,
		Columns:  cfg.Columns,
		Dedupe:   cfg.DedupeByWAMID,
		Prefix:   cfg.RequestIDPrefix,
		Location: loc,
		Now:      time.Now,
	}
}

func (uc *ProcessLeadUseCase) Execute(ctx context.Context, payload []byte) ProcessResult {
	req := uc.requestID()
	log.Printf("[req=%s] webhook recebido", req)

	// 1) Extrair lead
	lead, err := ExtractLead(payload)
	if err != nil {
		log.Printf("❌ [req=%s] erro extraindo lead: %v", req, err)
		return ProcessResult{Status: "error", Req: req, Error: ErrCodeExtractFailed, Detail: err.Error()}
	}

	if lead.WAMID == "" && lead.Phone == "" && lead.Name == "" {
		log.Printf("❌ [req=%s] payload insuficiente (faltam wamid/phone/name)", req)
		return ProcessResult{Status: "error", Req: req, Error: ErrCodeInvalidPayload}
	}

	cols := uc.Columns

	// 2) Dedupe + captura do timestamp já existente na linha.
	// Falha de leitura aqui não derruba o pipeline: seguimos como lead novo.
	isDup := false
	rowIdx := 0
	existingTS := ""
	if uc.Dedupe && lead.WAMID != "" {
		row, err := uc.Store.FindRowByWAMID(ctx, lead.WAMID)
		switch {
		case err != nil:
			log.Printf("⚠️ [req=%s] dedupe falhou (seguindo sem dedupe): %v", req, err)
		case row > 0:
			isDup = true
			rowIdx = row
			if ts, err := uc.Store.ReadCell(ctx, row, cols.Timestamp); err == nil {
				existingTS = ts
			}
		}
	}

	// 3) Upsert inicial (marca pending/skipped)
	nowTS := uc.nowLocal()
	emailStatus := "pending"
	if isDup {
		emailStatus = "skipped"
	}
	base := map[string]string{
		cols.Timestamp:   nowTS,
		cols.Name:        lead.Name,
		cols.Phone:       lead.Phone,
		cols.Email:       lead.Email,
		cols.Message:     lead.Message,
		cols.Source:      lead.Source,
		cols.WAMID:       lead.WAMID,
		cols.StatusEmail: emailStatus,
	}

	row, _, err := uc.Store.Upsert(ctx, base, true)
	if err != nil {
		log.Printf("❌ [req=%s] falha no upsert inicial: %v", req, err)
		return ProcessResult{Status: "error", Req: req, WAMID: lead.WAMID, Error: ErrCodeUpsertFailed, Detail: err.Error()}
	}
	if rowIdx == 0 {
		rowIdx = row
	}

	// 4) E-mail (pulado em dedupe; erro nunca aborta o pipeline)
	if isDup {
		log.Printf("🟨 DEDUPE | req=%s | wamid=%s | linha=%d", req, lead.WAMID, rowIdx)
	} else {
		sent, err := uc.Notifier.SendLeadEmail(lead)
		switch {
		case err != nil:
			log.Printf("❌ [req=%s] erro enviando e-mail: %v", req, err)
			emailStatus = "error"
		case sent:
			emailStatus = "sent"
		default:
			emailStatus = "error"
		}
	}

	// 5) Upsert final: registro completo + status + updated_at.
	// Regra: updated_at espelha o timestamp da linha (sem drift) — o valor que
	// já estava gravado em caso de dedupe, senão o gerado no passo 3.
	tsForUpdatedAt := existingTS
	if strings.TrimSpace(tsForUpdatedAt) == "" {
		tsForUpdatedAt = nowTS
	}
	final := make(map[string]string, len(base)+1)
	for k, v := range base {
		final[k] = v
	}
	final[cols.StatusEmail] = emailStatus
	final[cols.UpdatedAt] = tsForUpdatedAt

	if _, _, err := uc.Store.Upsert(ctx, final, true); err != nil {
		// o lead já está durável desde o passo 3; só registra
		log.Printf("⚠️ [req=%s] falha ao marcar status_email/updated_at: %v", req, err)
	}

	// 6) Resposta
	outcome := "ok"
	if isDup {
		outcome = "dedupe"
	}
	log.Printf("✅ %s | req=%s | wamid=%s | email=%s", strings.ToUpper(outcome), req, lead.WAMID, emailStatus)

	return ProcessResult{
		OK:          true,
		Status:      outcome,
		Req:         req,
		WAMID:       lead.WAMID,
		Row:         rowIdx,
		EmailStatus: emailStatus,
		Lead: &LeadInfo{
			Name:   lead.Name,
			Phone:  lead.Phone,
			Email:  lead.Email,
			Source: lead.Source,
		},
	}
}

func (uc *ProcessLeadUseCase) requestID() string {
	return strings.ToUpper(uc.Prefix + "-" + uuid.NewString()[:8])
}

func (uc *ProcessLeadUseCase) nowLocal() string {
	now := uc.Now
	if now == nil {
		now = time.Now
	}
	loc := uc.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc).Format(timestampLayout)
}

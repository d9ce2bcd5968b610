package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// LeadStore é a persistência de leads na planilha. O record mapeia NOME DE
// COLUNA -> valor; campos que não existem no header são descartados em
// silêncio pelo adapter.
type LeadStore interface {
	// Upsert grava por wamid: atualiza a linha existente ou cria uma nova.
	// Retorna a linha afetada (1-based) e se ela foi criada agora.
	Upsert(ctx context.Context, record map[string]string, preserveTimestamp bool) (row int, created bool, err error)

	// FindRowByWAMID retorna a linha (1-based) do wamid, ou 0 se não existe.
	FindRowByWAMID(ctx context.Context, wamid string) (int, error)

	// ReadCell lê uma célula pelo nome da coluna. Coluna ausente -> "".
	ReadCell(ctx context.Context, row int, column string) (string, error)
}

// LeadNotifier dispara a notificação do lead. O pipeline só enxerga o
// resultado: entregue (true), recusado (false) ou erro.
type LeadNotifier interface {
	SendLeadEmail(lead *entity.Lead) (bool, error)
}

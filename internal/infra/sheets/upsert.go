package sheets

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/ligue-leads/internal/config"
)

const timestampLayout = "2006-01-02 15:04:05"

// Store persiste leads na planilha, uma linha por wamid. A conexão é aberta
// na primeira operação, para o processo subir mesmo sem SHEET_ID configurado;
// o erro de configuração aparece como falha da operação, não como crash.
type Store struct {
	cfg       config.Config
	cols      config.ColumnMapping
	immutable map[string]bool
	loc       *time.Location
	now       func() time.Time

	mu sync.Mutex
	ws worksheet
}

func NewStore(cfg config.Config) *Store {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &Store{
		cfg:       cfg,
		cols:      cfg.Columns,
		immutable: cfg.ImmutableCols,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *Store) worksheet(ctx context.Context) (worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ws != nil {
		return s.ws, nil
	}

	id, err := spreadsheetIDFromConfig(s.cfg)
	if err != nil {
		return nil, err
	}
	svc, err := newService(ctx, s.cfg)
	if err != nil {
		return nil, storeErr("connect", err)
	}
	ws := &apiWorksheet{svc: svc, spreadsheetID: id, tab: s.cfg.SheetTab}
	if err := ws.ensureTab(ctx); err != nil {
		return nil, err
	}
	s.ws = ws
	return ws, nil
}

// FindRowByWAMID retorna a linha (1-based) do wamid, ou 0 quando não existe
// ou a coluna do wamid não está no header.
func (s *Store) FindRowByWAMID(ctx context.Context, wamid string) (int, error) {
	ws, err := s.worksheet(ctx)
	if err != nil {
		return 0, err
	}
	hs, err := ws.headers(ctx)
	if err != nil {
		return 0, err
	}
	col, ok := headerIndexMap(hs)[s.cols.WAMID]
	if !ok {
		log.Printf("⚠️ Sheets: coluna %q não encontrada no header", s.cols.WAMID)
		return 0, nil
	}
	return findRowByKey(ctx, ws, col+1, wamid)
}

// ReadCell lê uma célula pelo nome da coluna. Coluna fora do header -> "".
func (s *Store) ReadCell(ctx context.Context, row int, column string) (string, error) {
	ws, err := s.worksheet(ctx)
	if err != nil {
		return "", err
	}
	hs, err := ws.headers(ctx)
	if err != nil {
		return "", err
	}
	col, ok := headerIndexMap(hs)[strings.ToLower(strings.TrimSpace(column))]
	if !ok {
		return "", nil
	}
	return ws.readCell(ctx, row, col+1)
}

// Upsert grava o record por wamid: atualiza a MESMA linha quando a chave já
// existe, senão cria uma nova. Com preserveTimestamp o valor já gravado na
// coluna de timestamp nunca é sobrescrito. O update é seletivo, célula a
// célula: só as colunas presentes no record e fora do conjunto imutável são
// tocadas, para não atropelar colunas de fórmula mantidas fora daqui.
func (s *Store) Upsert(ctx context.Context, record map[string]string, preserveTimestamp bool) (int, bool, error) {
	// aceita 'wamid' literal ou o alias configurado
	wamid := strings.TrimSpace(record["wamid"])
	if wamid == "" {
		wamid = strings.TrimSpace(record[s.cols.WAMID])
	}
	if wamid == "" {
		return 0, false, ErrMissingKey
	}

	ws, err := s.worksheet(ctx)
	if err != nil {
		return 0, false, err
	}
	hs, err := ws.headers(ctx)
	if err != nil {
		return 0, false, err
	}
	idx := headerIndexMap(hs)

	keyCol, hasKeyCol := idx[s.cols.WAMID]
	rowNum := 0
	if hasKeyCol {
		rowNum, err = findRowByKey(ctx, ws, keyCol+1, wamid)
		if err != nil {
			return 0, false, err
		}
	} else {
		log.Printf("⚠️ Sheets: coluna %q não encontrada no header", s.cols.WAMID)
	}

	if rowNum == 0 {
		return s.insert(ctx, ws, record, hs, idx, wamid, keyCol+1, hasKeyCol)
	}
	return s.update(ctx, ws, record, idx, rowNum, wamid, preserveTimestamp)
}

func (s *Store) insert(
	ctx context.Context,
	ws worksheet,
	record map[string]string,
	headers []string,
	idx map[string]int,
	wamid string,
	keyCol int,
	hasKeyCol bool,
) (int, bool, error) {
	width := len(headers)
	if width < 1 {
		width = 1
	}
	row := make([]string, width)
	for field, value := range record {
		k := strings.ToLower(strings.TrimSpace(field))
		if pos, ok := idx[k]; ok && pos < len(row) {
			row[pos] = value
		}
	}

	if err := ws.appendRow(ctx, row); err != nil {
		return 0, false, err
	}

	// o append não informa a posição; relocalizar pela própria chave
	rowNum := 0
	if hasKeyCol {
		if found, err := findRowByKey(ctx, ws, keyCol, wamid); err == nil && found > 0 {
			rowNum = found
		}
	}
	if rowNum == 0 {
		n, err := ws.countFilledRows(ctx)
		if err != nil {
			n = -1
		}
		rowNum = n
	}

	log.Printf("✅ Sheets: append concluído | wamid=%s | row=%d", wamid, rowNum)
	return rowNum, true, nil
}

func (s *Store) update(
	ctx context.Context,
	ws worksheet,
	record map[string]string,
	idx map[string]int,
	rowNum int,
	wamid string,
	preserveTimestamp bool,
) (int, bool, error) {
	out := make(map[string]string, len(record)+1)
	for k, v := range record {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}

	// 1) nunca sobrescrever o timestamp já gravado
	if tsCol, ok := idx[s.cols.Timestamp]; ok && preserveTimestamp {
		if current, err := ws.readCell(ctx, rowNum, tsCol+1); err == nil && current != "" {
			out[s.cols.Timestamp] = current
		}
	}

	// 2) garantir updated_at quando não vier no record
	if _, ok := idx[s.cols.UpdatedAt]; ok && strings.TrimSpace(out[s.cols.UpdatedAt]) == "" {
		out[s.cols.UpdatedAt] = s.now().In(s.loc).Format(timestampLayout)
	}

	// 3) aplicar célula a célula, pulando colunas imutáveis
	updates := 0
	for field, value := range out {
		pos, ok := idx[field]
		if !ok || s.immutable[field] {
			continue
		}
		if err := ws.writeCell(ctx, rowNum, pos+1, value); err != nil {
			return 0, false, err
		}
		updates++
	}

	log.Printf("✅ Sheets: update seletivo concluído | wamid=%s | row=%d | colunas=%d", wamid, rowNum, updates)
	return rowNum, false, nil
}

package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/xavierca1/ligue-leads/internal/config"
)

const (
	defaultRowCount = 1000
	defaultColCount = 26
)

// worksheet é a superfície mínima da aba usada pelo upsert e pelo índice.
// Cada chamada relê a planilha: o header pode mudar entre chamadas e nada
// é cacheado localmente.
type worksheet interface {
	headers(ctx context.Context) ([]string, error)
	readCell(ctx context.Context, row, col int) (string, error)
	writeCell(ctx context.Context, row, col int, value string) error
	appendRow(ctx context.Context, values []string) error
	countFilledRows(ctx context.Context) (int, error)
	colValues(ctx context.Context, col int) ([]string, error)
	allValues(ctx context.Context) ([][]string, error)
}

// apiWorksheet fala com a API v4 do Google Sheets. Linhas e colunas são
// 1-based, como na notação A1.
type apiWorksheet struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	tab           string
}

var sheetURLRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9\-_]+)`)

func spreadsheetIDFromConfig(cfg config.Config) (string, error) {
	if cfg.SheetID != "" {
		return cfg.SheetID, nil
	}
	if cfg.SheetURL != "" {
		if m := sheetURLRe.FindStringSubmatch(cfg.SheetURL); m != nil {
			return m[1], nil
		}
		return "", &ConfigError{Message: "SHEET_URL não contém um id de planilha válido"}
	}
	return "", &ConfigError{Message: "configure SHEET_ID ou SHEET_URL no .env"}
}

func newService(ctx context.Context, cfg config.Config) (*sheetsapi.Service, error) {
	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	return sheetsapi.NewService(ctx, opts...)
}

// ensureTab cria a aba com o tamanho padrão quando ela não existe.
func (w *apiWorksheet) ensureTab(ctx context.Context) error {
	meta, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return storeErr("open", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == w.tab {
			return nil
		}
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{
					Title: w.tab,
					GridProperties: &sheetsapi.GridProperties{
						RowCount:    defaultRowCount,
						ColumnCount: defaultColCount,
					},
				},
			},
		}},
	}
	if _, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return storeErr("add_sheet", err)
	}
	return nil
}

func (w *apiWorksheet) headers(ctx context.Context) ([]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.rangeFor("1:1")).Context(ctx).Do()
	if err != nil {
		return nil, storeErr("headers", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(resp.Values[0]))
	for _, v := range resp.Values[0] {
		out = append(out, strings.TrimSpace(fmt.Sprint(v)))
	}
	return out, nil
}

func (w *apiWorksheet) readCell(ctx context.Context, row, col int) (string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.rangeFor(rowColToA1(row, col))).Context(ctx).Do()
	if err != nil {
		return "", storeErr("read_cell", err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return strings.TrimSpace(fmt.Sprint(resp.Values[0][0])), nil
}

// writeCell usa USER_ENTERED para o Sheets interpretar datas e números.
func (w *apiWorksheet) writeCell(ctx context.Context, row, col int, value string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := w.svc.Spreadsheets.Values.
		Update(w.spreadsheetID, w.rangeFor(rowColToA1(row, col)), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return storeErr("write_cell", err)
	}
	return nil
}

// appendRow adiciona a linha no fim da tabela ancorada em A1. A API não
// devolve a posição criada; quem chamou precisa relocalizar a linha.
func (w *apiWorksheet) appendRow(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := w.svc.Spreadsheets.Values.
		Append(w.spreadsheetID, w.rangeFor("A1"), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return storeErr("append", err)
	}
	return nil
}

func (w *apiWorksheet) countFilledRows(ctx context.Context) (int, error) {
	grid, err := w.allValues(ctx)
	if err != nil {
		return 0, err
	}
	return len(grid), nil
}

func (w *apiWorksheet) colValues(ctx context.Context, col int) ([]string, error) {
	ref := colLetter(col) + ":" + colLetter(col)
	resp, err := w.svc.Spreadsheets.Values.
		Get(w.spreadsheetID, w.rangeFor(ref)).
		MajorDimension("COLUMNS").
		Context(ctx).Do()
	if err != nil {
		return nil, storeErr("col_values", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(resp.Values[0]))
	for _, v := range resp.Values[0] {
		out = append(out, fmt.Sprint(v))
	}
	return out, nil
}

func (w *apiWorksheet) allValues(ctx context.Context) ([][]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, fmt.Sprintf("'%s'", w.tab)).Context(ctx).Do()
	if err != nil {
		return nil, storeErr("all_values", err)
	}
	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func (w *apiWorksheet) rangeFor(ref string) string {
	return fmt.Sprintf("'%s'!%s", w.tab, ref)
}

// headerIndexMap: header_lower -> índice zero-based. Colunas sem nome ficam
// fora do mapa; em nomes duplicados o último vence.
func headerIndexMap(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		if h != "" {
			idx[strings.ToLower(h)] = i
		}
	}
	return idx
}

func colLetter(col int) string {
	s := ""
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}

func rowColToA1(row, col int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

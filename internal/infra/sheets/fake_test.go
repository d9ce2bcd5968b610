package sheets

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-leads/internal/config"
)

// fakeWorksheet guarda a grade em memória e simula as falhas de rede que o
// adapter real pode encontrar.
type fakeWorksheet struct {
	grid [][]string

	headersErr error
	colErr     error
	gridErr    error
	appendErr  error
	writeErr   error

	// derruba a leitura de coluna/grade logo após um append, simulando o
	// atraso de leitura-depois-de-escrita do backend
	failLookupAfterAppend bool

	appends int
	writes  int
}

func (f *fakeWorksheet) headers(ctx context.Context) ([]string, error) {
	if f.headersErr != nil {
		return nil, f.headersErr
	}
	if len(f.grid) == 0 {
		return nil, nil
	}
	out := make([]string, len(f.grid[0]))
	for i, h := range f.grid[0] {
		out[i] = strings.TrimSpace(h)
	}
	return out, nil
}

func (f *fakeWorksheet) readCell(ctx context.Context, row, col int) (string, error) {
	if row < 1 || row > len(f.grid) {
		return "", nil
	}
	cells := f.grid[row-1]
	if col < 1 || col > len(cells) {
		return "", nil
	}
	return cells[col-1], nil
}

func (f *fakeWorksheet) writeCell(ctx context.Context, row, col int, value string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	for row > len(f.grid) {
		f.grid = append(f.grid, nil)
	}
	cells := f.grid[row-1]
	for col > len(cells) {
		cells = append(cells, "")
	}
	cells[col-1] = value
	f.grid[row-1] = cells
	f.writes++
	return nil
}

func (f *fakeWorksheet) appendRow(ctx context.Context, values []string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	row := make([]string, len(values))
	copy(row, values)
	f.grid = append(f.grid, row)
	f.appends++
	if f.failLookupAfterAppend {
		f.colErr = errTimeout
		f.gridErr = errTimeout
	}
	return nil
}

func (f *fakeWorksheet) countFilledRows(ctx context.Context) (int, error) {
	return len(f.grid), nil
}

func (f *fakeWorksheet) colValues(ctx context.Context, col int) ([]string, error) {
	if f.colErr != nil {
		return nil, f.colErr
	}
	out := make([]string, len(f.grid))
	for i, row := range f.grid {
		if col-1 < len(row) {
			out[i] = row[col-1]
		}
	}
	return out, nil
}

func (f *fakeWorksheet) allValues(ctx context.Context) ([][]string, error) {
	if f.gridErr != nil {
		return nil, f.gridErr
	}
	return f.grid, nil
}

func (f *fakeWorksheet) cell(row, col int) string {
	v, _ := f.readCell(context.Background(), row, col)
	return v
}

var errTimeout = storeErr("read", context.DeadlineExceeded)

func testColumns() config.ColumnMapping {
	return config.ColumnMapping{
		Timestamp:   "timestamp",
		Name:        "name",
		Phone:       "phone",
		Email:       "email",
		Message:     "message",
		Source:      "source",
		WAMID:       "wamid",
		StatusEmail: "status_email",
		UpdatedAt:   "updated_at",
	}
}

func testHeader() []string {
	return []string{"timestamp", "name", "phone", "email", "message", "source", "wamid", "status_email", "updated_at"}
}

func newTestStore(ws worksheet, immutable map[string]bool) *Store {
	return &Store{
		cols:      testColumns(),
		immutable: immutable,
		loc:       time.UTC,
		now: func() time.Time {
			return time.Date(2025, 9, 3, 16, 39, 53, 0, time.UTC)
		},
		ws: ws,
	}
}

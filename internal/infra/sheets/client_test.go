package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/config"
)

func TestSpreadsheetIDFromConfig(t *testing.T) {
	id, err := spreadsheetIDFromConfig(config.Config{SheetID: "abc123"})
	assert.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = spreadsheetIDFromConfig(config.Config{
		SheetURL: "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0",
	})
	assert.NoError(t, err)
	assert.Equal(t, "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", id)

	// SHEET_ID ganha da URL quando os dois existem
	id, err = spreadsheetIDFromConfig(config.Config{SheetID: "abc123", SheetURL: "https://docs.google.com/spreadsheets/d/outro"})
	assert.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = spreadsheetIDFromConfig(config.Config{SheetURL: "https://example.com/nada"})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = spreadsheetIDFromConfig(config.Config{})
	assert.ErrorAs(t, err, &cfgErr)
}

func TestUpsertWithoutSheetConfigured(t *testing.T) {
	store := NewStore(config.Config{SheetTab: "leads", Columns: testColumns(), Timezone: "UTC"})

	_, _, err := store.Upsert(context.Background(), leadRecord("wamid.A1"), true)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TZ", "")
	t.Setenv("PORT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "leads", cfg.SheetTab)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, "WSE", cfg.RequestIDPrefix)
	assert.True(t, cfg.DedupeByWAMID)
	assert.False(t, cfg.EmailEnabled)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "wamid", cfg.Columns.WAMID)
	assert.Equal(t, "status_email", cfg.Columns.StatusEmail)
	assert.Empty(t, cfg.ImmutableCols)
}

func TestLoadColumnAliases(t *testing.T) {
	t.Setenv("COL_WAMID", "ID_Mensagem")
	t.Setenv("COL_TIMESTAMP", "Data")

	cfg := Load()
	assert.Equal(t, "id_mensagem", cfg.Columns.WAMID)
	assert.Equal(t, "data", cfg.Columns.Timestamp)
}

func TestLoadImmutableCols(t *testing.T) {
	t.Setenv("IMMUTABLE_COLS", "Timestamp_Convertido, diff_minutos ,")

	cfg := Load()
	assert.True(t, cfg.ImmutableCols["timestamp_convertido"])
	assert.True(t, cfg.ImmutableCols["diff_minutos"])
	assert.Len(t, cfg.ImmutableCols, 2)
}

func TestLoadFlags(t *testing.T) {
	t.Setenv("DEDUPE_BY_WAMID", "off")
	t.Setenv("EMAIL_ENABLED", "yes")
	t.Setenv("EMAIL_DRY_RUN", "1")

	cfg := Load()
	assert.False(t, cfg.DedupeByWAMID)
	assert.True(t, cfg.EmailEnabled)
	assert.True(t, cfg.EmailDryRun)
}

func TestLoadEmailToList(t *testing.T) {
	t.Setenv("EMAIL_TO", "a@x.com, b@x.com,,c@x.com ")

	cfg := Load()
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, cfg.EmailTo)
}

func TestLoadSMTPPortFallback(t *testing.T) {
	t.Setenv("SMTP_PORT", "não-número")

	cfg := Load()
	assert.Equal(t, 587, cfg.SMTPPort)
}

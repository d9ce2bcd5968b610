package config

import (
	"os"
	"strconv"
	"strings"
)

// ColumnMapping traduz as chaves lógicas do lead para os nomes reais das
// colunas da planilha. Os nomes ficam sempre em lower-case para bater com o
// header sem diferenciar maiúsculas.
type ColumnMapping struct {
	Timestamp   string
	Name        string
	Phone       string
	Email       string
	Message     string
	Source      string
	WAMID       string
	StatusEmail string
	UpdatedAt   string
}

type Config struct {
	Env         string
	Port        string
	VerifyToken string

	SheetID         string
	SheetURL        string
	SheetTab        string
	CredentialsFile string
	CredentialsJSON string

	Columns       ColumnMapping
	ImmutableCols map[string]bool

	Timezone        string
	DedupeByWAMID   bool
	RequestIDPrefix string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	EmailFrom    string
	EmailTo      []string
	EmailEnabled bool
	EmailDryRun  bool
}

// Load lê o .env/ambiente uma única vez. Nenhum campo é obrigatório aqui:
// a falta de SHEET_ID/SHEET_URL é reportada pelo adapter na primeira escrita,
// para o processo subir mesmo com a configuração incompleta.
func Load() Config {
	credFile := env("GOOGLE_APPLICATION_CREDENTIALS", "")
	if credFile == "" {
		credFile = env("SERVICE_ACCOUNT_FILE", "")
	}

	return Config{
		Env:         strings.ToLower(env("ENV", "dev")),
		Port:        env("PORT", "8080"),
		VerifyToken: env("VERIFY_TOKEN", ""),

		SheetID:         env("SHEET_ID", ""),
		SheetURL:        env("SHEET_URL", ""),
		SheetTab:        env("SHEET_TAB_LEADS", "leads"),
		CredentialsFile: credFile,
		CredentialsJSON: env("SERVICE_ACCOUNT_JSON", ""),

		Columns:       loadColumns(),
		ImmutableCols: csvSet(env("IMMUTABLE_COLS", "")),

		Timezone:        env("TZ", "America/Sao_Paulo"),
		DedupeByWAMID:   boolEnv("DEDUPE_BY_WAMID", true),
		RequestIDPrefix: env("REQUEST_ID_PREFIX", "WSE"),

		SMTPHost:     env("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     intEnv("SMTP_PORT", 587),
		SMTPUser:     env("SMTP_USER", ""),
		SMTPPass:     env("SMTP_PASS", ""),
		EmailFrom:    env("EMAIL_FROM", ""),
		EmailTo:      csvList(env("EMAIL_TO", "")),
		EmailEnabled: boolEnv("EMAIL_ENABLED", false),
		EmailDryRun:  boolEnv("EMAIL_DRY_RUN", false),
	}
}

func loadColumns() ColumnMapping {
	return ColumnMapping{
		Timestamp:   strings.ToLower(env("COL_TIMESTAMP", "timestamp")),
		Name:        strings.ToLower(env("COL_NAME", "name")),
		Phone:       strings.ToLower(env("COL_PHONE", "phone")),
		Email:       strings.ToLower(env("COL_EMAIL", "email")),
		Message:     strings.ToLower(env("COL_MESSAGE", "message")),
		Source:      strings.ToLower(env("COL_SOURCE", "source")),
		WAMID:       strings.ToLower(env("COL_WAMID", "wamid")),
		StatusEmail: strings.ToLower(env("COL_STATUS_EMAIL", "status_email")),
		UpdatedAt:   strings.ToLower(env("COL_UPDATED_AT", "updated_at")),
	}
}

func env(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

// boolEnv aceita 1/true/yes/on como verdadeiro.
func boolEnv(name string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func intEnv(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func csvSet(v string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range csvList(v) {
		set[strings.ToLower(item)] = true
	}
	return set
}

package usecase

// Códigos de erro expostos no corpo da resposta do webhook.
const (
	ErrCodeExtractFailed  = "extract_failed"
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeUpsertFailed   = "sheets_upsert_failed"
)

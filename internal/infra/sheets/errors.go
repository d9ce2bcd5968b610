package sheets

import (
	"errors"
	"fmt"
)

// ErrMissingKey: upsert chamado sem wamid utilizável no record.
var ErrMissingKey = errors.New("upsert requer o campo wamid no record")

// ConfigError: identificadores obrigatórios ausentes no ambiente.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// StoreError: falha de rede/autenticação falando com o Sheets.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("sheets %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

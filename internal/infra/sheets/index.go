package sheets

import (
	"context"
	"log"
	"strings"
)

// findRowByKey procura o valor APENAS na coluna indicada (1-based) e devolve
// a linha (1-based) do primeiro match exato, ou 0. A linha 1 (header) nunca
// participa do match. Varrer só a coluna da chave evita falso positivo quando
// o wamid aparece citado dentro do texto de outra linha.
func findRowByKey(ctx context.Context, ws worksheet, keyCol int, key string) (int, error) {
	key = strings.TrimSpace(key)
	if key == "" || keyCol < 1 {
		return 0, nil
	}

	// caminho rápido: só a coluna da chave
	vals, err := ws.colValues(ctx, keyCol)
	if err == nil {
		for i, v := range vals {
			if i == 0 { // header
				continue
			}
			if strings.TrimSpace(v) == key {
				return i + 1, nil
			}
		}
		return 0, nil
	}
	log.Printf("⚠️ Sheets: leitura da coluna da chave falhou, varrendo a grade | err=%v", err)

	// fallback: grade completa filtrada pela mesma coluna
	grid, gridErr := ws.allValues(ctx)
	if gridErr != nil {
		return 0, gridErr
	}
	for r, row := range grid {
		if r == 0 {
			continue
		}
		if keyCol-1 < len(row) && strings.TrimSpace(row[keyCol-1]) == key {
			return r + 1, nil
		}
	}
	return 0, nil
}

package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

var (
	emailRe  = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w{2,}`)
	digitsRe = regexp.MustCompile(`\D+`)
)

type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					ID   string `json:"id"`
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ExtractLead extrai o primeiro evento útil do payload do webhook:
// entry[0].changes[0].value.messages[0] e contacts[0].profile.name.
// Mensagens adicionais no mesmo envio são ignoradas.
func ExtractLead(payload []byte) (*entity.Lead, error) {
	var p webhookPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("payload inválido: %w", err)
	}

	lead := &entity.Lead{Source: "whatsapp"}
	if len(p.Entry) > 0 && len(p.Entry[0].Changes) > 0 {
		value := p.Entry[0].Changes[0].Value
		if len(value.Messages) > 0 {
			msg := value.Messages[0]
			lead.WAMID = strings.TrimSpace(msg.ID)
			lead.Phone = digitsOnly(msg.From)
			lead.Message = strings.TrimSpace(msg.Text.Body)
		}
		if len(value.Contacts) > 0 {
			lead.Name = strings.TrimSpace(value.Contacts[0].Profile.Name)
		}
	}

	// heurística simples pra achar e-mail dentro do texto
	if m := emailRe.FindString(lead.Message); m != "" {
		lead.Email = strings.ToLower(m)
	}

	return lead, nil
}

func digitsOnly(s string) string {
	return digitsRe.ReplaceAllString(s, "")
}

package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

func TestRecipientsMergesLeadEmail(t *testing.T) {
	s := &EmailSender{To: []string{"vendas@example.com", "chefe@example.com"}}
	lead := &entity.Lead{Email: "cliente@example.com"}

	assert.Equal(t,
		[]string{"vendas@example.com", "chefe@example.com", "cliente@example.com"},
		s.Recipients(lead),
	)
}

func TestRecipientsDedupesCaseInsensitive(t *testing.T) {
	s := &EmailSender{To: []string{"Vendas@Example.com"}}
	lead := &entity.Lead{Email: "vendas@example.com"}

	assert.Equal(t, []string{"Vendas@Example.com"}, s.Recipients(lead))
}

func TestRecipientsIgnoresInvalidLeadEmail(t *testing.T) {
	s := &EmailSender{To: []string{"vendas@example.com"}}

	assert.Equal(t, []string{"vendas@example.com"}, s.Recipients(&entity.Lead{Email: "sem-arroba"}))
	assert.Equal(t, []string{"vendas@example.com"}, s.Recipients(nil))
}

func TestSendLeadEmailDisabled(t *testing.T) {
	s := &EmailSender{Enabled: false}

	ok, err := s.SendLeadEmail(&entity.Lead{Name: "Maria", Source: "whatsapp"})
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSendLeadEmailDryRun(t *testing.T) {
	s := &EmailSender{
		Enabled: true,
		DryRun:  true,
		To:      []string{"vendas@example.com"},
	}

	ok, err := s.SendLeadEmail(&entity.Lead{
		Name:    "Maria",
		Phone:   "5511999999999",
		Message: "quero orçamento",
		WAMID:   "wamid.A1",
		Source:  "whatsapp",
	})
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSendLeadEmailWithoutRecipients(t *testing.T) {
	s := &EmailSender{Enabled: true}

	ok, err := s.SendLeadEmail(&entity.Lead{Name: "Maria", Source: "whatsapp"})
	assert.NoError(t, err)
	assert.False(t, ok)
}

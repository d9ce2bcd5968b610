package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

const leadTemplate = `<p><b>Novo lead recebido pelo WhatsApp</b></p>
<ul>
  <li><b>Nome:</b> {{if .Name}}{{.Name}}{{else}}—{{end}}</li>
  <li><b>Telefone:</b> {{if .Phone}}{{.Phone}}{{else}}—{{end}}</li>
  <li><b>E-mail:</b> {{if .Email}}{{.Email}}{{else}}—{{end}}</li>
  <li><b>Origem:</b> {{.Source}}</li>
  <li><b>WAMID:</b> {{.WAMID}}</li>
</ul>
<p><b>Mensagem:</b><br>{{.Message}}</p>
`

var leadTmpl = template.Must(template.New("lead").Parse(leadTemplate))

func NewEmailSender(cfg config.Config) *EmailSender {
	return &EmailSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
		To:       cfg.EmailTo,
		Enabled:  cfg.EmailEnabled,
		DryRun:   cfg.EmailDryRun,
	}
}

// SendLeadEmail monta e envia a notificação do lead. Retorna (true, nil)
// quando considerado entregue — inclusive com envio desativado ou dry-run.
func (s *EmailSender) SendLeadEmail(lead *entity.Lead) (bool, error) {
	if !s.Enabled {
		log.Println("EMAIL_ENABLED=0 — envio desativado. Pulando.")
		return true, nil
	}

	to := s.Recipients(lead)
	if len(to) == 0 {
		log.Println("❌ Nenhum destinatário (EMAIL_TO vazio e lead sem e-mail).")
		return false, nil
	}

	var body bytes.Buffer
	if err := leadTmpl.Execute(&body, lead); err != nil {
		return false, fmt.Errorf("erro ao processar template de email: %w", err)
	}

	subject := fmt.Sprintf("Novo lead WhatsApp: %s", displayName(lead))

	m := gomail.NewMessage()
	from := s.From
	if from == "" {
		from = s.User
	}
	if from == "" {
		from = "no-reply@example.com"
	}
	// EMAIL_FROM pode vir como "Nome <email>"; senão formata com o nome padrão
	if strings.Contains(from, "<") {
		m.SetHeader("From", from)
	} else {
		m.SetHeader("From", m.FormatAddress(from, "Leads Bot"))
	}
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if s.DryRun {
		log.Printf("EMAIL_DRY_RUN=1 — não enviando. Assunto=%q To=%v", subject, to)
		return true, nil
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return false, fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	log.Printf("✅ E-mail enviado com sucesso para %v", to)
	return true, nil
}

// Recipients junta EMAIL_TO com o e-mail do lead, sem duplicar e mantendo a
// ordem de chegada.
func (s *EmailSender) Recipients(lead *entity.Lead) []string {
	list := append([]string{}, s.To...)
	if lead != nil {
		if e := strings.TrimSpace(lead.Email); strings.Contains(e, "@") {
			list = append(list, e)
		}
	}

	seen := make(map[string]bool, len(list))
	uniq := make([]string, 0, len(list))
	for _, r := range list {
		k := strings.ToLower(r)
		if r == "" || seen[k] {
			continue
		}
		seen[k] = true
		uniq = append(uniq, r)
	}
	return uniq
}

func displayName(lead *entity.Lead) string {
	switch {
	case lead.Name != "":
		return lead.Name
	case lead.Phone != "":
		return lead.Phone
	}
	return "sem nome"
}

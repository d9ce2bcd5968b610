package usecase

// ProcessResult é o corpo JSON devolvido pelo webhook para qualquer desfecho.
type ProcessResult struct {
	OK          bool      `json:"ok"`
	Status      string    `json:"status"` // ok | dedupe | error
	Req         string    `json:"req"`
	WAMID       string    `json:"wamid,omitempty"`
	Row         int       `json:"row,omitempty"`
	EmailStatus string    `json:"email_status,omitempty"`
	Error       string    `json:"error,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	Lead        *LeadInfo `json:"lead,omitempty"`
}

type LeadInfo struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Source string `json:"source"`
}

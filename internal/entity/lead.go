package entity

// Lead é o registro transitório extraído de um evento do webhook.
// Criado uma vez por entrega e nunca mutado depois da extração.
type Lead struct {
	WAMID   string `json:"wamid"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
	Source  string `json:"source"`
}

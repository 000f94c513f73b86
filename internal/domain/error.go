package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int                    `json:"code" example:"400"`
	Category string                 `json:"category" example:"INSUFFICIENT_STOCK"`
	Message  string                 `json:"message" example:"Estoque insuficiente para esta saída."`
	Details  map[string]interface{} `json:"details,omitempty"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock é o estoque mínimo aplicado quando o cadastro não informa um valor.
const DefaultMinStock = 1

// Item representa uma ferramenta/item do catálogo de estoque (a Entidade).
// Quantity só é alterada pelo motor de lançamentos (stockservice) depois do cadastro.
type Item struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Code        string           `json:"code"` // código único do item
	Description string           `json:"description,omitempty"`
	SupplierID  *string          `json:"supplier_id,omitempty"`
	Quantity    int              `json:"quantity"`
	MinStock    int              `json:"min_stock"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Version     int              `json:"version"` // incrementada a cada lançamento
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	SupplierName string `json:"supplier_name,omitempty"`
}

// IsLowStock indica se o item está no ou abaixo do mínimo (critério do dashboard).
func (i Item) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// ItemFilter define os parâmetros de busca e paginação do catálogo.
type ItemFilter struct {
	Name         string
	Code         string
	LowStockOnly bool
	Limit        int
	Offset       int
}

// ItemInput é o payload de cadastro/edição de um item.
// Quantity só é aceita no cadastro (saldo inicial).
type ItemInput struct {
	Name        string           `json:"name" example:"Chave de fenda 1/4"`
	Code        string           `json:"code" example:"CF-014"`
	Description string           `json:"description,omitempty"`
	SupplierID  *string          `json:"supplier_id,omitempty"`
	Quantity    *int             `json:"quantity,omitempty" example:"10"`
	MinStock    *int             `json:"min_stock,omitempty" example:"2"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty" swaggertype:"string" example:"8.90"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty" swaggertype:"string" example:"14.50"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction é o sentido de uma movimentação de estoque.
type Direction string

const (
	DirectionInbound  Direction = "entrada"
	DirectionOutbound Direction = "saida"
)

// Valid informa se a direção é uma das duas reconhecidas.
func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// Apply devolve a quantidade resultante de aplicar amount sobre current.
func (d Direction) Apply(current, amount int) int {
	if d == DirectionOutbound {
		return current - amount
	}
	return current + amount
}

// Movement é um fato histórico do ledger. Imutável depois de gravado.
type Movement struct {
	ID           string           `json:"id"`
	ItemID       string           `json:"item_id"`
	Direction    Direction        `json:"direction"`
	Amount       int              `json:"amount"`
	UnitValue    *decimal.Decimal `json:"unit_value,omitempty"`
	Counterparty *string          `json:"counterparty,omitempty"`
	Note         *string          `json:"note,omitempty"`
	ActorID      *string          `json:"actor_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`

	// Campos de leitura (JOIN com items), vazios no lançamento.
	ItemName string `json:"item_name,omitempty"`
	ItemCode string `json:"item_code,omitempty"`
}

// MovementFilter define os parâmetros de listagem do ledger.
type MovementFilter struct {
	ItemID    string
	Direction Direction
	Limit     int
	Offset    int
}

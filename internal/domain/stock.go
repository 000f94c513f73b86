package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PostRequest é o payload validado de um lançamento de estoque.
// @Description Requisição de movimentação (entrada ou saída) de um item.
type PostRequest struct {
	ItemID       string           `json:"item_id" example:"3c95b8c8-3f0e-4a4e-9d8f-0d2b1c3a4e5f"`
	Direction    Direction        `json:"direction" example:"saida"`
	Amount       int              `json:"amount" example:"3"`
	UnitValue    *decimal.Decimal `json:"unit_value,omitempty" swaggertype:"string" example:"12.50"`
	Counterparty *string          `json:"counterparty,omitempty" example:"Oficina Central"`
	Note         *string          `json:"note,omitempty"`
	ActorID      *string          `json:"actor_id,omitempty"`
}

// LowStockAlert é o aviso não fatal de que a quantidade ficou abaixo do mínimo.
type LowStockAlert struct {
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
	Message   string `json:"message"`
}

// PostResult é o resultado de um lançamento confirmado.
type PostResult struct {
	MovementID        string         `json:"movement_id"`
	ResultingQuantity int            `json:"resulting_quantity"`
	Threshold         int            `json:"threshold"`
	Alert             *LowStockAlert `json:"alert,omitempty"`
}

// StockSnapshot é o estado do item lido sob bloqueio dentro da transação.
type StockSnapshot struct {
	ItemID   string
	Quantity int
	MinStock int
	Version  int
}

// --- Contratos do motor de lançamentos ---

// ItemStockStore expõe a leitura com bloqueio e a escrita da quantidade de um item.
// As implementações só são válidas dentro de StockTxRunner.RunInTx.
type ItemStockStore interface {
	GetForUpdate(ctx context.Context, itemID string) (StockSnapshot, error)
	SetQuantity(ctx context.Context, itemID string, quantity int, expectedVersion int) error
}

// MovementLedger é o ledger append-only de movimentações.
type MovementLedger interface {
	Append(ctx context.Context, movement Movement) (Movement, error)
}

// StockTxRunner executa fn numa única unidade atômica: commit se fn retornar nil,
// rollback completo em qualquer outro caso.
type StockTxRunner interface {
	RunInTx(ctx context.Context, fn func(items ItemStockStore, ledger MovementLedger) error) error
}

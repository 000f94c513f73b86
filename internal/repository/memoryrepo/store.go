// Package memoryrepo implementa os contratos do motor de lançamentos em memória:
// bloqueio exclusivo por item, escritas bufferizadas e aplicadas só no commit.
//
// É um dublê para testes (serviços, handlers e roteador); main.go nunca o usa.
package memoryrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
)

// ErrLockNotHeld indica escrita num item que não foi lido com GetForUpdate na transação.
var ErrLockNotHeld = errors.New("memoryrepo: item não bloqueado nesta transação")

// Store guarda itens e ledger em memória.
type Store struct {
	mu        sync.Mutex
	items     map[string]domain.Item
	movements []domain.Movement
	locks     map[string]chan struct{}
	commitErr error
	lastStamp time.Time
	now       func() time.Time
}

// New cria um Store vazio.
func New() *Store {
	return &Store{
		items: make(map[string]domain.Item),
		locks: make(map[string]chan struct{}),
		now:   time.Now,
	}
}

// SeedItem cadastra um item diretamente (gera ID se vazio) e devolve a versão gravada.
func (s *Store) SeedItem(item domain.Item) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Version == 0 {
		item.Version = 1
	}
	now := s.now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	s.items[item.ID] = item
	return item
}

// Item devolve o estado confirmado de um item.
func (s *Store) Item(id string) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}

// MovementCount devolve quantas movimentações confirmadas existem para o item.
func (s *Store) MovementCount(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n
}

// SetCommitError faz os próximos commits falharem com err (nil restaura o normal).
func (s *Store) SetCommitError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// ListMovements lista o ledger confirmado, mais recentes primeiro.
func (s *Store) ListMovements(_ context.Context, filter domain.MovementFilter) ([]domain.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Movement, 0, len(s.movements))
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.Direction != "" && m.Direction != filter.Direction {
			continue
		}
		if item, ok := s.items[m.ItemID]; ok {
			m.ItemName, m.ItemCode = item.Name, item.Code
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset >= len(out) {
		return []domain.Movement{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ItemTotals calcula os agregados do catálogo confirmado.
func (s *Store) ItemTotals(_ context.Context) (domain.ItemTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := domain.ItemTotals{StockValue: decimal.Zero}
	for _, item := range s.items {
		totals.TotalItems++
		if item.CostPrice != nil {
			totals.StockValue = totals.StockValue.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if item.IsLowStock() {
			totals.LowStockItems++
		}
	}
	return totals, nil
}

// RunInTx executa fn com bloqueios por item; as escritas só aparecem se fn e o commit tiverem sucesso.
func (s *Store) RunInTx(ctx context.Context, fn func(items domain.ItemStockStore, ledger domain.MovementLedger) error) error {
	tx := &memTx{
		store:      s,
		held:       make(map[string]chan struct{}),
		quantities: make(map[string]int),
	}
	defer tx.release()

	if err := fn(tx, tx); err != nil {
		return err
	}
	return tx.commit()
}

func (s *Store) lockFor(itemID string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.locks[itemID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[itemID] = ch
	}
	return ch
}

// memTx é uma transação: implementa domain.ItemStockStore e domain.MovementLedger.
type memTx struct {
	store      *Store
	held       map[string]chan struct{}
	quantities map[string]int
	appended   []domain.Movement
}

// GetForUpdate adquire o bloqueio exclusivo do item, respeitando o deadline do ctx.
func (tx *memTx) GetForUpdate(ctx context.Context, itemID string) (domain.StockSnapshot, error) {
	if _, ok := tx.held[itemID]; !ok {
		lock := tx.store.lockFor(itemID)
		select {
		case lock <- struct{}{}:
			tx.held[itemID] = lock
		case <-ctx.Done():
			return domain.StockSnapshot{}, fmt.Errorf("aguardando bloqueio do item %s: %w", itemID, ctx.Err())
		}
	}

	tx.store.mu.Lock()
	item, ok := tx.store.items[itemID]
	tx.store.mu.Unlock()
	if !ok {
		return domain.StockSnapshot{}, apperror.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", itemID))
	}

	qty := item.Quantity
	if pending, ok := tx.quantities[itemID]; ok {
		qty = pending
	}
	return domain.StockSnapshot{ItemID: item.ID, Quantity: qty, MinStock: item.MinStock, Version: item.Version}, nil
}

func (tx *memTx) SetQuantity(_ context.Context, itemID string, quantity int, expectedVersion int) error {
	if _, ok := tx.held[itemID]; !ok {
		return ErrLockNotHeld
	}
	if quantity < 0 {
		return fmt.Errorf("quantidade negativa para o item %s", itemID)
	}

	tx.store.mu.Lock()
	item, ok := tx.store.items[itemID]
	tx.store.mu.Unlock()
	if !ok || item.Version != expectedVersion {
		return fmt.Errorf("versão desatualizada do item %s", itemID)
	}

	tx.quantities[itemID] = quantity
	return nil
}

func (tx *memTx) Append(_ context.Context, movement domain.Movement) (domain.Movement, error) {
	s := tx.store
	s.mu.Lock()
	_, ok := s.items[movement.ItemID]
	stamp := s.now().UTC()
	if !stamp.After(s.lastStamp) {
		stamp = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = stamp
	s.mu.Unlock()
	if !ok {
		return domain.Movement{}, fmt.Errorf("item %s inexistente para a movimentação", movement.ItemID)
	}
	if movement.ID == "" {
		movement.ID = uuid.NewString()
	}
	movement.CreatedAt = stamp
	tx.appended = append(tx.appended, movement)
	return movement, nil
}

func (tx *memTx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.commitErr != nil {
		return s.commitErr
	}

	now := s.now().UTC()
	for id, qty := range tx.quantities {
		item := s.items[id]
		item.Quantity = qty
		item.Version++
		item.UpdatedAt = now
		s.items[id] = item
	}
	s.movements = append(s.movements, tx.appended...)
	return nil
}

func (tx *memTx) release() {
	for id, lock := range tx.held {
		<-lock
		delete(tx.held, id)
	}
}

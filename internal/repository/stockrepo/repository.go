package stockrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ferrastock/internal/domain"
	"ferrastock/internal/errors"
	"ferrastock/internal/pkg/database"
	"ferrastock/internal/pkg/logger"
)

// StockRepository é o adaptador PostgreSQL do motor de lançamentos: executa as transações
// (domain.StockTxRunner) e lê o ledger de movimentações.
type StockRepository struct {
	DB          *sql.DB
	DBTimeout   time.Duration
	LockTimeout time.Duration
	logger      logger.Logger
}

// NewStockRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewStockRepository(db *sql.DB, dbTimeout, lockTimeout time.Duration, logger logger.Logger) *StockRepository {
	return &StockRepository{
		DB:          db,
		DBTimeout:   dbTimeout,
		LockTimeout: lockTimeout,
		logger:      logger,
	}
}

// RunInTx abre uma transação, executa fn e faz commit apenas se fn retornar nil.
// A transação inteira respeita DBTimeout e a espera por bloqueio de linha respeita LockTimeout.
func (r *StockRepository) RunInTx(ctx context.Context, fn func(items domain.ItemStockStore, ledger domain.MovementLedger) error) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de lançamento.", err)
		return errors.NewPersistenceError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // Rollback em caso de erro

	// SET não aceita parâmetros posicionais.
	if _, err := tx.ExecContext(ctxTimeout, fmt.Sprintf("SET LOCAL lock_timeout = %d", r.LockTimeout.Milliseconds())); err != nil {
		r.logger.Error("Falha ao configurar lock_timeout.", err)
		return errors.NewPersistenceError("Falha ao configurar transação", err)
	}

	store := &txStore{tx: tx, ctx: ctxTimeout, logger: r.logger}
	if err := fn(store, store); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		r.logger.Error("Falha ao commitar transação de lançamento.", commitErr)
		return errors.NewPersistenceError("Falha ao commitar transação", commitErr)
	}
	return nil
}

// txStore implementa domain.ItemStockStore e domain.MovementLedger sobre uma *sql.Tx.
// Todas as consultas usam o contexto com timeout da transação.
type txStore struct {
	tx     *sql.Tx
	ctx    context.Context
	logger logger.Logger
}

// GetForUpdate lê quantidade, mínimo e versão do item com SELECT ... FOR UPDATE.
func (s *txStore) GetForUpdate(_ context.Context, itemID string) (domain.StockSnapshot, error) {
	query := `
        SELECT id, quantity, min_stock, version
        FROM items
        WHERE id = $1 FOR UPDATE`

	var snap domain.StockSnapshot
	err := s.tx.QueryRowContext(s.ctx, query, itemID).Scan(&snap.ItemID, &snap.Quantity, &snap.MinStock, &snap.Version)
	if err == sql.ErrNoRows {
		return domain.StockSnapshot{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", itemID))
	}
	if err != nil {
		if database.IsLockTimeout(err) {
			s.logger.Warn("Tempo esgotado aguardando bloqueio do item.", map[string]interface{}{"item_id": itemID})
			return domain.StockSnapshot{}, errors.NewPersistenceError("Item ocupado por outro lançamento. Tente novamente.", err)
		}
		s.logger.Error("Falha ao bloquear item para lançamento.", err)
		return domain.StockSnapshot{}, errors.NewPersistenceError("Falha ao buscar item para atualização", err)
	}
	return snap, nil
}

// SetQuantity grava a nova quantidade checando a versão lida (OCC) e incrementa a versão.
func (s *txStore) SetQuantity(_ context.Context, itemID string, quantity int, expectedVersion int) error {
	query := `
        UPDATE items
        SET quantity = $1, version = version + 1, updated_at = NOW()
        WHERE id = $2 AND version = $3`

	result, err := s.tx.ExecContext(s.ctx, query, quantity, itemID, expectedVersion)
	if err != nil {
		s.logger.Error("Falha ao atualizar quantidade do item.", err)
		return errors.NewPersistenceError("Falha ao atualizar estoque", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewPersistenceError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		s.logger.Warn("Versão do item desatualizada dentro da transação.", map[string]interface{}{
			"item_id":          itemID,
			"expected_version": expectedVersion,
		})
		return errors.NewPersistenceError("O item foi modificado por outra operação. Tente novamente.", nil)
	}
	return nil
}

// Append insere a movimentação; created_at vem do relógio do banco no momento do INSERT.
func (s *txStore) Append(_ context.Context, m domain.Movement) (domain.Movement, error) {
	query := `
        INSERT INTO movements (id, item_id, direction, amount, unit_value, counterparty, note, actor_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, clock_timestamp())
        RETURNING created_at`

	err := s.tx.QueryRowContext(s.ctx, query,
		m.ID, m.ItemID, string(m.Direction), m.Amount,
		nullDecimal(m.UnitValue), nullString(m.Counterparty), nullString(m.Note), nullString(m.ActorID),
	).Scan(&m.CreatedAt)
	if database.IsForeignKeyViolation(err) {
		// O item está bloqueado nesta transação; a única referência que pode faltar é o usuário.
		s.logger.Warn("Movimentação com usuário inexistente.", map[string]interface{}{"item_id": m.ItemID})
		return domain.Movement{}, errors.NewValidationError("O usuário informado na movimentação não existe.")
	}
	if err != nil {
		s.logger.Error("Falha ao inserir movimentação.", err)
		return domain.Movement{}, errors.NewPersistenceError("Falha ao registrar movimentação", err)
	}
	return m, nil
}

// ListMovements lista o ledger com os dados do item, mais recentes primeiro.
func (r *StockRepository) ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		where []string
		args  []interface{}
	)
	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		where = append(where, fmt.Sprintf("m.item_id = $%d", len(args)))
	}
	if filter.Direction != "" {
		args = append(args, string(filter.Direction))
		where = append(where, fmt.Sprintf("m.direction = $%d", len(args)))
	}

	query := `
        SELECT m.id, m.item_id, m.direction, m.amount, m.unit_value, m.counterparty, m.note, m.actor_id, m.created_at,
               i.name, i.code
        FROM movements m
        JOIN items i ON i.id = m.item_id`
	if len(where) > 0 {
		query += "\n        WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf("\n        ORDER BY m.created_at DESC, m.id DESC\n        LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar movimentações.", err)
		return nil, errors.NewDBError("Falha ao listar movimentações", err)
	}
	defer rows.Close()

	movements := []domain.Movement{}
	for rows.Next() {
		var (
			m                           domain.Movement
			direction                   string
			unitValue                   decimal.NullDecimal
			counterparty, note, actorID sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.ItemID, &direction, &m.Amount, &unitValue, &counterparty, &note, &actorID, &m.CreatedAt,
			&m.ItemName, &m.ItemCode); err != nil {
			return nil, errors.NewDBError("Falha ao ler movimentação", err)
		}
		m.Direction = domain.Direction(direction)
		if unitValue.Valid {
			v := unitValue.Decimal
			m.UnitValue = &v
		}
		m.Counterparty = stringPtr(counterparty)
		m.Note = stringPtr(note)
		m.ActorID = stringPtr(actorID)
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar movimentações", err)
	}
	return movements, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

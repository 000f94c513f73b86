package itemrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ferrastock/internal/domain"
	"ferrastock/internal/errors"
	"ferrastock/internal/pkg/cache"
	"ferrastock/internal/pkg/database"
	"ferrastock/internal/pkg/logger"
)

// Define a chave de cache para itens.
const itemCacheKey = "item:%s"

const selectItem = `
        SELECT i.id, i.name, i.code, i.description, i.supplier_id, i.quantity, i.min_stock,
               i.cost_price, i.sale_price, i.version, i.created_at, i.updated_at, s.name
        FROM items i
        LEFT JOIN suppliers s ON s.id = i.supplier_id`

// ItemRepository persiste o catálogo de itens no PostgreSQL com cache-aside no Redis.
type ItemRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewItemRepository cria e retorna uma nova instância do Repositório.
func NewItemRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ItemRepository {
	return &ItemRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Save insere um novo item. Código duplicado vira ConflictError.
func (r *ItemRepository) Save(ctx context.Context, item domain.Item) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
        INSERT INTO items (id, name, code, description, supplier_id, quantity, min_stock, cost_price, sale_price, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		item.ID, item.Name, item.Code, nullString(item.Description), item.SupplierID,
		item.Quantity, item.MinStock, nullDecimal(item.CostPrice), nullDecimal(item.SalePrice),
		item.Version, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return domain.Item{}, r.translateWriteError("inserir", item, err)
	}

	r.logger.Info("Item salvo com sucesso no repositório.", map[string]interface{}{"item_id": item.ID, "code": item.Code})
	return item, nil
}

// FindByID busca um item pelo ID, utilizando a estratégia Cache-Aside.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(itemCacheKey, id)
	var item domain.Item

	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &item) == nil {
			return item, nil
		}
		r.logger.Warn("Entrada de cache corrompida, buscando no DB.", map[string]interface{}{"key": key})
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	item, err = scanItem(r.DB.QueryRowContext(ctxTimeout, selectItem+` WHERE i.id = $1`, id))
	if err == sql.ErrNoRows {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar item no DB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao buscar item", err)
	}

	if itemJSON, marshalErr := json.Marshal(item); marshalErr == nil {
		if setErr := r.Cache.Set(ctxTimeout, key, itemJSON, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar item no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}
	return item, nil
}

// FindAll lista itens com filtros opcionais, ordenados por nome.
func (r *ItemRepository) FindAll(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		where []string
		args  []interface{}
	)
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("i.name ILIKE $%d", len(args)))
	}
	if filter.Code != "" {
		args = append(args, "%"+filter.Code+"%")
		where = append(where, fmt.Sprintf("i.code ILIKE $%d", len(args)))
	}
	if filter.LowStockOnly {
		where = append(where, "i.quantity <= i.min_stock")
	}

	query := selectItem
	if len(where) > 0 {
		query += "\n        WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf("\n        ORDER BY i.name, i.code\n        LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar itens.", err)
		return nil, errors.NewDBError("Falha ao listar itens", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao ler item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar itens", err)
	}
	return items, nil
}

// Update altera os dados cadastrais do item. Quantidade e versão pertencem ao motor de lançamentos.
func (r *ItemRepository) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
        UPDATE items
        SET name = $1, code = $2, description = $3, supplier_id = $4, min_stock = $5,
            cost_price = $6, sale_price = $7, updated_at = $8
        WHERE id = $9`

	result, err := r.DB.ExecContext(ctxTimeout, query,
		item.Name, item.Code, nullString(item.Description), item.SupplierID, item.MinStock,
		nullDecimal(item.CostPrice), nullDecimal(item.SalePrice), item.UpdatedAt, item.ID,
	)
	if err != nil {
		return domain.Item{}, r.translateWriteError("atualizar", item, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", item.ID))
	}

	r.invalidate(ctxTimeout, item.ID)
	return r.FindByID(ctx, item.ID)
}

// Delete remove um item sem movimentações.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.NewConflictError("O item possui movimentações registradas e não pode ser excluído.")
		}
		r.logger.Error("Falha ao excluir item.", err)
		return errors.NewDBError("Falha ao excluir item", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", id))
	}

	r.invalidate(ctxTimeout, id)
	return nil
}

// InvalidateItem descarta a cópia em cache do item.
func (r *ItemRepository) InvalidateItem(ctx context.Context, itemID string) error {
	return r.Cache.Delete(ctx, fmt.Sprintf(itemCacheKey, itemID))
}

func (r *ItemRepository) invalidate(ctx context.Context, id string) {
	if err := r.InvalidateItem(ctx, id); err != nil {
		r.logger.Warn("Falha ao invalidar cache do item.", map[string]interface{}{"item_id": id, "error": err.Error()})
	}
}

func (r *ItemRepository) translateWriteError(op string, item domain.Item, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return errors.NewConflictError(fmt.Sprintf("Já existe um item com o código '%s'.", item.Code))
	case database.IsForeignKeyViolation(err):
		return errors.NewValidationError("O fornecedor informado não existe.")
	case database.IsCheckViolation(err):
		return errors.NewValidationError("Valores do item fora dos limites permitidos.")
	}
	r.logger.Error(fmt.Sprintf("Falha ao %s item no DB.", op), err)
	return errors.NewDBError(fmt.Sprintf("Falha ao %s item", op), err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (domain.Item, error) {
	var (
		item                    domain.Item
		description, supplierID sql.NullString
		supplierName            sql.NullString
		costPrice, salePrice    decimal.NullDecimal
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.Code, &description, &supplierID, &item.Quantity, &item.MinStock,
		&costPrice, &salePrice, &item.Version, &item.CreatedAt, &item.UpdatedAt, &supplierName,
	)
	if err != nil {
		return domain.Item{}, err
	}
	item.Description = description.String
	if supplierID.Valid {
		item.SupplierID = &supplierID.String
	}
	item.SupplierName = supplierName.String
	if costPrice.Valid {
		item.CostPrice = &costPrice.Decimal
	}
	if salePrice.Valid {
		item.SalePrice = &salePrice.Decimal
	}
	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

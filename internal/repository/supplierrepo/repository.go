package supplierrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ferrastock/internal/domain"
	"ferrastock/internal/errors"
	"ferrastock/internal/pkg/database"
	"ferrastock/internal/pkg/logger"
)

// SupplierRepository implementa as operações CRUD de fornecedores.
type SupplierRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewSupplierRepository cria e retorna uma nova instância do Repositório de Fornecedores.
func NewSupplierRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *SupplierRepository {
	return &SupplierRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// CreateSupplier insere um novo fornecedor no banco de dados.
func (r *SupplierRepository) CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	r.logger.Debug("Iniciando CreateSupplier no repositório.", map[string]interface{}{"name": supplier.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	query := `
        INSERT INTO suppliers (id, name, phone, email, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		supplier.ID, supplier.Name, nullString(supplier.Phone), nullString(supplier.Email), supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir fornecedor no DB.", err)
		return domain.Supplier{}, errors.NewDBError("Falha ao criar fornecedor", err)
	}

	r.logger.Info("Fornecedor criado com sucesso.", map[string]interface{}{"id": supplier.ID, "name": supplier.Name})
	return supplier, nil
}

// GetSupplierByID busca um fornecedor pelo ID.
func (r *SupplierRepository) GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, phone, email, created_at, updated_at
        FROM suppliers
        WHERE id = $1`

	supplier, err := scanSupplier(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		r.logger.Info("Fornecedor não encontrado.", map[string]interface{}{"id": id})
		return domain.Supplier{}, errors.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar fornecedor no DB.", err)
		return domain.Supplier{}, errors.NewDBError("Falha ao buscar fornecedor", err)
	}
	return supplier, nil
}

// GetAllSuppliers busca todos os fornecedores, ordenados por nome.
func (r *SupplierRepository) GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, phone, email, created_at, updated_at
        FROM suppliers
        ORDER BY name`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllSuppliers query.", err)
		return nil, errors.NewDBError("Falha ao buscar todos os fornecedores", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao ler fornecedor", err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro durante iteração dos fornecedores", err)
	}
	return suppliers, nil
}

// UpdateSupplier atualiza um fornecedor existente.
func (r *SupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	supplier.UpdatedAt = time.Now().UTC()
	query := `
        UPDATE suppliers
        SET name = $1, phone = $2, email = $3, updated_at = $4
        WHERE id = $5
        RETURNING created_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		supplier.Name, nullString(supplier.Phone), nullString(supplier.Email), supplier.UpdatedAt, supplier.ID,
	).Scan(&supplier.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Supplier{}, errors.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %s não encontrado para atualização.", supplier.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar fornecedor no DB.", err)
		return domain.Supplier{}, errors.NewDBError("Falha ao atualizar fornecedor", err)
	}

	r.logger.Info("Fornecedor atualizado com sucesso.", map[string]interface{}{"id": supplier.ID})
	return supplier, nil
}

// DeleteSupplier remove um fornecedor sem itens vinculados.
func (r *SupplierRepository) DeleteSupplier(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.NewConflictError("O fornecedor possui itens vinculados e não pode ser excluído.")
		}
		r.logger.Error("Falha ao deletar fornecedor no DB.", err)
		return errors.NewDBError("Falha ao deletar fornecedor", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %s não encontrado para exclusão.", id))
	}

	r.logger.Info("Fornecedor deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSupplier(row rowScanner) (domain.Supplier, error) {
	var (
		s            domain.Supplier
		phone, email sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &phone, &email, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.Supplier{}, err
	}
	s.Phone = phone.String
	s.Email = email.String
	return s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

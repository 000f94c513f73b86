package supplierservice

import (
	"context"
	"strings"

	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/validate"
)

// SupplierRepository define o contrato que o Serviço de Fornecedores espera da camada de Persistência.
type SupplierRepository interface {
	CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error)
	GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

// Service implementa o cadastro de fornecedores.
type Service struct {
	repo   SupplierRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Fornecedores.
func NewService(repo SupplierRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateSupplier cria um novo fornecedor após validações de negócio.
func (s *Service) CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	supplier = normalize(supplier)
	if err := validateSupplier(supplier); err != nil {
		s.logger.Warn("Falha na validação do fornecedor.", map[string]interface{}{"name": supplier.Name, "error": err.Error()})
		return domain.Supplier{}, err
	}
	supplier.ID = ""

	created, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		s.logger.Error("Falha ao criar fornecedor no repositório.", err)
		return domain.Supplier{}, err
	}
	return created, nil
}

// GetSupplierByID busca um fornecedor pelo ID após validações de formato.
func (s *Service) GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error) {
	if !validate.UUID(id) {
		return domain.Supplier{}, apperror.NewValidationError("O ID do fornecedor deve ser um UUID válido.")
	}
	return s.repo.GetSupplierByID(ctx, id)
}

// GetAllSuppliers busca todos os fornecedores.
func (s *Service) GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.repo.GetAllSuppliers(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar todos os fornecedores no repositório.", err)
		return nil, err
	}
	return suppliers, nil
}

// UpdateSupplier atualiza um fornecedor existente.
func (s *Service) UpdateSupplier(ctx context.Context, id string, supplier domain.Supplier) (domain.Supplier, error) {
	if !validate.UUID(id) {
		return domain.Supplier{}, apperror.NewValidationError("O ID do fornecedor deve ser um UUID válido.")
	}
	supplier = normalize(supplier)
	if err := validateSupplier(supplier); err != nil {
		return domain.Supplier{}, err
	}
	supplier.ID = id

	updated, err := s.repo.UpdateSupplier(ctx, supplier)
	if err != nil {
		s.logger.Error("Falha ao atualizar fornecedor no repositório.", err)
		return domain.Supplier{}, err
	}
	return updated, nil
}

// DeleteSupplier exclui um fornecedor pelo ID.
func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	if !validate.UUID(id) {
		return apperror.NewValidationError("O ID do fornecedor deve ser um UUID válido.")
	}
	return s.repo.DeleteSupplier(ctx, id)
}

func normalize(supplier domain.Supplier) domain.Supplier {
	supplier.Name = strings.TrimSpace(supplier.Name)
	supplier.Phone = strings.TrimSpace(supplier.Phone)
	supplier.Email = strings.ToLower(strings.TrimSpace(supplier.Email))
	return supplier
}

func validateSupplier(supplier domain.Supplier) error {
	if supplier.Name == "" {
		return apperror.NewValidationError("O nome do fornecedor não pode ser vazio.")
	}
	if !validate.MaxLen(supplier.Name, 100) {
		return apperror.NewValidationError("O nome do fornecedor não pode exceder 100 caracteres.")
	}
	if !validate.MaxLen(supplier.Phone, 20) {
		return apperror.NewValidationError("O telefone não pode exceder 20 caracteres.")
	}
	if supplier.Email != "" && (!validate.Email(supplier.Email) || !validate.MaxLen(supplier.Email, 100)) {
		return apperror.NewValidationError("Email do fornecedor inválido.")
	}
	return nil
}

package itemservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/validate"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ItemRepository define o contrato que o Serviço espera da camada de Persistência.
type ItemRepository interface {
	Save(ctx context.Context, item domain.Item) (domain.Item, error)
	FindByID(ctx context.Context, id string) (domain.Item, error)
	FindAll(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa o cadastro de itens.
type Service struct {
	repo   ItemRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Item.
func NewService(repo ItemRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateItem valida e cadastra um item com saldo inicial opcional.
func (s *Service) CreateItem(ctx context.Context, input domain.ItemInput) (domain.Item, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return domain.Item{}, err
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return domain.Item{}, apperror.NewValidationError("A quantidade inicial não pode ser negativa.")
	}

	now := time.Now().UTC()
	item := domain.Item{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		SupplierID:  input.SupplierID,
		MinStock:    domain.DefaultMinStock,
		CostPrice:   input.CostPrice,
		SalePrice:   input.SalePrice,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.MinStock != nil {
		item.MinStock = *input.MinStock
	}

	created, err := s.repo.Save(ctx, item)
	if err != nil {
		s.logger.Error("Falha ao cadastrar item.", err)
		return domain.Item{}, err
	}
	return created, nil
}

// GetItemByID busca um item pelo ID.
func (s *Service) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	if !validate.UUID(id) {
		return domain.Item{}, apperror.NewValidationError("O ID do item deve ser um UUID válido.")
	}
	return s.repo.FindByID(ctx, id)
}

// ListItems lista o catálogo com paginação.
func (s *Service) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if filter.Offset < 0 {
		return nil, apperror.NewValidationError("Offset não pode ser negativo.")
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultLimit
	case filter.Limit > MaxLimit:
		filter.Limit = MaxLimit
	}
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Code = strings.TrimSpace(filter.Code)

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Falha ao listar itens.", err)
		return nil, err
	}
	return items, nil
}

// UpdateItem altera os dados cadastrais. A quantidade só muda por movimentação.
func (s *Service) UpdateItem(ctx context.Context, id string, input domain.ItemInput) (domain.Item, error) {
	if !validate.UUID(id) {
		return domain.Item{}, apperror.NewValidationError("O ID do item deve ser um UUID válido.")
	}
	input = normalize(input)
	if input.Quantity != nil {
		return domain.Item{}, apperror.NewValidationError("A quantidade só pode ser alterada por movimentações de entrada ou saída.")
	}
	if err := validateInput(input); err != nil {
		return domain.Item{}, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}

	current.Name = input.Name
	current.Code = input.Code
	current.Description = input.Description
	current.SupplierID = input.SupplierID
	current.CostPrice = input.CostPrice
	current.SalePrice = input.SalePrice
	if input.MinStock != nil {
		current.MinStock = *input.MinStock
	}
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		s.logger.Error("Falha ao atualizar item.", err)
		return domain.Item{}, err
	}
	s.logger.Info("Item atualizado.", map[string]interface{}{"item_id": id})
	return updated, nil
}

// DeleteItem remove um item; itens com movimentações são preservados (Conflict).
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if !validate.UUID(id) {
		return apperror.NewValidationError("O ID do item deve ser um UUID válido.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Item excluído.", map[string]interface{}{"item_id": id})
	return nil
}

func normalize(input domain.ItemInput) domain.ItemInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.TrimSpace(input.Code)
	input.Description = strings.TrimSpace(input.Description)
	if input.SupplierID != nil {
		v := strings.TrimSpace(*input.SupplierID)
		if v == "" {
			input.SupplierID = nil
		} else {
			input.SupplierID = &v
		}
	}
	return input
}

func validateInput(input domain.ItemInput) error {
	if input.Name == "" || input.Code == "" {
		return apperror.NewValidationError("Nome e código são obrigatórios para o item.")
	}
	if !validate.MaxLen(input.Name, 200) {
		return apperror.NewValidationError("O nome deve ter no máximo 200 caracteres.")
	}
	if !validate.MaxLen(input.Code, 50) {
		return apperror.NewValidationError("O código deve ter no máximo 50 caracteres.")
	}
	if input.SupplierID != nil && !validate.UUID(*input.SupplierID) {
		return apperror.NewValidationError("O ID do fornecedor deve ser um UUID válido.")
	}
	if input.MinStock != nil && *input.MinStock < 0 {
		return apperror.NewValidationError("O estoque mínimo não pode ser negativo.")
	}
	if input.CostPrice != nil && input.CostPrice.IsNegative() {
		return apperror.NewValidationError(fmt.Sprintf("Preço de custo inválido: %s.", input.CostPrice))
	}
	if input.SalePrice != nil && input.SalePrice.IsNegative() {
		return apperror.NewValidationError(fmt.Sprintf("Preço de venda inválido: %s.", input.SalePrice))
	}
	return nil
}

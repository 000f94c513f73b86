// Package stockservice é o motor de lançamentos de estoque: cada entrada ou saída
// atualiza a quantidade do item e grava a movimentação no ledger numa única transação.
package stockservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
)

const (
	// MaxCounterpartyLength é o tamanho máximo do campo de contraparte (fornecedor/destinatário).
	MaxCounterpartyLength = 100

	// MaxQuantity é o maior saldo ou quantidade movimentada que cabe nas colunas INTEGER.
	MaxQuantity = math.MaxInt32

	DefaultListLimit = 50
	MaxListLimit     = 500
)

// MovementReader define a leitura do ledger confirmado.
type MovementReader interface {
	ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error)
}

// ItemCacheInvalidator descarta a cópia em cache de um item depois do commit.
type ItemCacheInvalidator interface {
	InvalidateItem(ctx context.Context, itemID string) error
}

// Service implementa o motor de lançamentos.
type Service struct {
	tx        domain.StockTxRunner
	movements MovementReader
	cache     ItemCacheInvalidator
	logger    logger.Logger
}

// NewService cria o serviço. cache pode ser nil.
func NewService(tx domain.StockTxRunner, movements MovementReader, cache ItemCacheInvalidator, logger logger.Logger) *Service {
	return &Service{tx: tx, movements: movements, cache: cache, logger: logger}
}

// Post aplica uma movimentação ao saldo do item e a registra no ledger.
//
// Ou as duas escritas são confirmadas juntas ou nenhuma é. Recusas de negócio
// (NotFound, InsufficientStock, Validation) voltam sem alteração; qualquer outra
// falha da transação vira PersistenceError e pode ser repetida pelo cliente.
func (s *Service) Post(ctx context.Context, req domain.PostRequest) (domain.PostResult, error) {
	req = normalize(req)
	if err := validatePost(req); err != nil {
		s.logger.Warn("Lançamento rejeitado na validação.", map[string]interface{}{"item_id": req.ItemID, "reason": err.Error()})
		return domain.PostResult{}, err
	}

	movement := domain.Movement{
		ID:           uuid.NewString(),
		ItemID:       req.ItemID,
		Direction:    req.Direction,
		Amount:       req.Amount,
		UnitValue:    req.UnitValue,
		Counterparty: req.Counterparty,
		Note:         req.Note,
		ActorID:      req.ActorID,
	}

	var result domain.PostResult
	err := s.tx.RunInTx(ctx, func(items domain.ItemStockStore, ledger domain.MovementLedger) error {
		snapshot, err := items.GetForUpdate(ctx, req.ItemID)
		if err != nil {
			return err
		}

		if req.Direction == domain.DirectionInbound && snapshot.Quantity > MaxQuantity-req.Amount {
			return apperror.NewValidationError(fmt.Sprintf("A entrada deixaria o saldo acima do máximo permitido (%d).", MaxQuantity))
		}

		newQuantity := req.Direction.Apply(snapshot.Quantity, req.Amount)
		if newQuantity < 0 {
			return apperror.NewInsufficientStockError(snapshot.Quantity, req.Amount)
		}

		if err := items.SetQuantity(ctx, req.ItemID, newQuantity, snapshot.Version); err != nil {
			return err
		}

		saved, err := ledger.Append(ctx, movement)
		if err != nil {
			return err
		}

		result = domain.PostResult{
			MovementID:        saved.ID,
			ResultingQuantity: newQuantity,
			Threshold:         snapshot.MinStock,
			Alert:             lowStockAlert(req.Direction, newQuantity, snapshot.MinStock),
		}
		return nil
	})
	if err != nil {
		return domain.PostResult{}, s.classify(req, err)
	}

	if s.cache != nil {
		if cerr := s.cache.InvalidateItem(ctx, req.ItemID); cerr != nil {
			s.logger.Warn("Falha ao invalidar cache do item após lançamento.", map[string]interface{}{"item_id": req.ItemID, "error": cerr.Error()})
		}
	}

	fields := map[string]interface{}{
		"movement_id":        result.MovementID,
		"item_id":            req.ItemID,
		"direction":          string(req.Direction),
		"amount":             req.Amount,
		"resulting_quantity": result.ResultingQuantity,
	}
	if result.Alert != nil {
		fields["threshold"] = result.Threshold
		s.logger.Warn("Lançamento confirmado com estoque abaixo do mínimo.", fields)
	} else {
		s.logger.Info("Lançamento confirmado.", fields)
	}
	return result, nil
}

// ListMovements lista o ledger, mais recentes primeiro.
func (s *Service) ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error) {
	if filter.ItemID != "" {
		if _, err := uuid.Parse(filter.ItemID); err != nil {
			return nil, apperror.NewValidationError("Formato de ID de item inválido.")
		}
	}
	if filter.Direction != "" && !filter.Direction.Valid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("Direção inválida: %q (use %q ou %q).", filter.Direction, domain.DirectionInbound, domain.DirectionOutbound))
	}
	if filter.Offset < 0 {
		return nil, apperror.NewValidationError("Offset não pode ser negativo.")
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}

	movements, err := s.movements.ListMovements(ctx, filter)
	if err != nil {
		s.logger.Error("Falha ao listar movimentações.", err)
		var appErr apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewInternalError("Falha interna ao listar movimentações.", err)
	}
	return movements, nil
}

// classify preserva as recusas de negócio e converte o resto em PersistenceError.
func (s *Service) classify(req domain.PostRequest, err error) error {
	var (
		notFound     *apperror.NotFoundError
		insufficient *apperror.InsufficientStockError
		validation   *apperror.ValidationError
		persistence  *apperror.PersistenceError
	)
	switch {
	case errors.As(err, &insufficient):
		s.logger.Info("Saída recusada por estoque insuficiente.", map[string]interface{}{
			"item_id":   req.ItemID,
			"current":   insufficient.Current,
			"requested": insufficient.Requested,
		})
		return err
	case errors.As(err, &notFound), errors.As(err, &validation):
		s.logger.Info("Lançamento recusado.", map[string]interface{}{"item_id": req.ItemID, "reason": err.Error()})
		return err
	case errors.As(err, &persistence):
		s.logger.Error("Falha de persistência no lançamento.", err)
		return err
	default:
		s.logger.Error("Falha de persistência no lançamento.", err)
		return apperror.NewPersistenceError("Não foi possível gravar a movimentação. Nenhuma alteração foi aplicada.", err)
	}
}

func normalize(req domain.PostRequest) domain.PostRequest {
	req.ItemID = strings.TrimSpace(req.ItemID)
	req.Direction = domain.Direction(strings.ToLower(strings.TrimSpace(string(req.Direction))))
	req.Counterparty = trimOptional(req.Counterparty)
	req.Note = trimOptional(req.Note)
	req.ActorID = trimOptional(req.ActorID)
	return req
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validatePost(req domain.PostRequest) error {
	if req.ItemID == "" {
		return apperror.NewValidationError("O item da movimentação é obrigatório.")
	}
	if _, err := uuid.Parse(req.ItemID); err != nil {
		return apperror.NewValidationError("Formato de ID de item inválido.")
	}
	if !req.Direction.Valid() {
		return apperror.NewValidationError(fmt.Sprintf("Direção inválida: %q (use %q ou %q).", req.Direction, domain.DirectionInbound, domain.DirectionOutbound))
	}
	if req.Amount <= 0 {
		return apperror.NewValidationError("A quantidade da movimentação deve ser maior que zero.")
	}
	if req.Amount > MaxQuantity {
		return apperror.NewValidationError(fmt.Sprintf("A quantidade da movimentação deve ser no máximo %d.", MaxQuantity))
	}
	if req.UnitValue != nil && req.UnitValue.IsNegative() {
		return apperror.NewValidationError("O valor unitário não pode ser negativo.")
	}
	if req.Counterparty != nil && utf8.RuneCountInString(*req.Counterparty) > MaxCounterpartyLength {
		return apperror.NewValidationError(fmt.Sprintf("A contraparte deve ter no máximo %d caracteres.", MaxCounterpartyLength))
	}
	if req.ActorID != nil {
		if _, err := uuid.Parse(*req.ActorID); err != nil {
			return apperror.NewValidationError("Formato de ID de usuário inválido.")
		}
	}
	return nil
}

// lowStockAlert só alerta em saídas que deixam o saldo estritamente abaixo do mínimo.
func lowStockAlert(direction domain.Direction, quantity, threshold int) *domain.LowStockAlert {
	if direction != domain.DirectionOutbound || quantity >= threshold {
		return nil
	}
	return &domain.LowStockAlert{
		Quantity:  quantity,
		Threshold: threshold,
		Message:   fmt.Sprintf("ALERTA: após esta saída o estoque (%d) ficou abaixo do mínimo (%d).", quantity, threshold),
	}
}

package stock

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"ferrastock/internal/api/respond"
	"ferrastock/internal/domain"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/middleware"
)

// StockService define o contrato que o Handler espera do motor de lançamentos.
type StockService interface {
	Post(ctx context.Context, req domain.PostRequest) (domain.PostResult, error)
	ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error)
}

// Handler agrupa todos os métodos de Handler de movimentação.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterRoutes registra as rotas de movimentação (já autenticadas pelo grupo).
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/movements", h.PostMovementHandler)
	r.Get("/movements", h.ListMovementsHandler)
}

// PostMovementHandler lida com a requisição POST /api/v1/movements.
// @Summary Registra uma movimentação de estoque
// @Description Aplica uma entrada ou saída ao saldo do item e grava a movimentação, atomicamente.
// @Description Saídas que deixam o saldo abaixo do mínimo retornam o campo alert.
// @Description actor_id é sempre o usuário do token, exceto para admin.
// @Tags movements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movement body domain.PostRequest true "Movimentação (direction: entrada | saida)"
// @Success 201 {object} domain.PostResult "Movimentação registrada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou estoque insuficiente"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Falha de persistência (pode ser repetida)"
// @Router /movements [post]
func (h *Handler) PostMovementHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.PostRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	// Só admin pode lançar em nome de outro usuário; os demais assinam com a própria identidade.
	if identity, ok := middleware.IdentityFromContext(ctx); ok {
		if req.ActorID == nil || identity.Role != domain.RoleAdmin {
			req.ActorID = &identity.UserID
		}
	}

	result, err := h.Service.Post(ctx, req)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.JSON(w, h.Logger, http.StatusCreated, result)
}

// ListMovementsHandler lida com a requisição GET /api/v1/movements.
// @Summary Lista movimentações
// @Description Lista o histórico de movimentações, mais recentes primeiro.
// @Tags movements
// @Produce json
// @Security BearerAuth
// @Param item_id query string false "Filtra por item"
// @Param direction query string false "entrada | saida"
// @Param limit query int false "Máximo de registros (padrão 50)"
// @Param offset query int false "Deslocamento"
// @Success 200 {array} domain.Movement
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Router /movements [get]
func (h *Handler) ListMovementsHandler(w http.ResponseWriter, r *http.Request) {
	h.listMovements(w, r, r.URL.Query().Get("item_id"))
}

func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request, itemID string) {
	limit, err := respond.QueryInt(r, "limit", 0)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	offset, err := respond.QueryInt(r, "offset", 0)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	movements, err := h.Service.ListMovements(r.Context(), domain.MovementFilter{
		ItemID:    itemID,
		Direction: domain.Direction(r.URL.Query().Get("direction")),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, movements)
}

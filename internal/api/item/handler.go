package item

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"ferrastock/internal/api/respond"
	"ferrastock/internal/domain"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/middleware"
)

// ItemService define o contrato que o Handler espera da camada de Serviço.
type ItemService interface {
	CreateItem(ctx context.Context, input domain.ItemInput) (domain.Item, error)
	GetItemByID(ctx context.Context, id string) (domain.Item, error)
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	UpdateItem(ctx context.Context, id string, input domain.ItemInput) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler do item.
type Handler struct {
	Service ItemService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ItemService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterRoutes registra as rotas do catálogo. Excluir exige papel admin.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/items", func(r chi.Router) {
		r.Post("/", h.CreateItemHandler)
		r.Get("/", h.ListItemsHandler)
		r.Get("/{id}", h.GetItemByIDHandler)
		r.Put("/{id}", h.UpdateItemHandler)
		r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{id}", h.DeleteItemHandler)
	})
}

// CreateItemHandler lida com a requisição POST /api/v1/items.
// @Summary Cadastra um item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body domain.ItemInput true "Dados do item (quantity é o saldo inicial)"
// @Success 201 {object} domain.Item
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Código já cadastrado"
// @Router /items [post]
func (h *Handler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ItemInput
	if err := respond.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	item, err := h.Service.CreateItem(r.Context(), input)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, item)
}

// GetItemByIDHandler lida com a requisição GET /api/v1/items/{id}.
// @Summary Busca um item pelo ID
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do item"
// @Success 200 {object} domain.Item
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Router /items/{id} [get]
func (h *Handler) GetItemByIDHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.GetItemByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, item)
}

// ListItemsHandler lida com a requisição GET /api/v1/items.
// @Summary Lista itens
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param name query string false "Parte do nome"
// @Param code query string false "Parte do código"
// @Param low_stock query bool false "Apenas itens no ou abaixo do mínimo"
// @Param limit query int false "Máximo de registros (padrão 50)"
// @Param offset query int false "Deslocamento"
// @Success 200 {array} domain.Item
// @Router /items [get]
func (h *Handler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()
	items, err := h.Service.ListItems(r.Context(), domain.ItemFilter{
		Name:         q.Get("name"),
		Code:         q.Get("code"),
		LowStockOnly: q.Get("low_stock") == "true",
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, items)
}

// UpdateItemHandler lida com a requisição PUT /api/v1/items/{id}.
// @Summary Atualiza os dados cadastrais de um item
// @Description A quantidade não pode ser alterada aqui; use movimentações.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do item"
// @Param item body domain.ItemInput true "Dados do item (sem quantity)"
// @Success 200 {object} domain.Item
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Código já cadastrado"
// @Router /items/{id} [put]
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ItemInput
	if err := respond.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, item)
}

// DeleteItemHandler lida com a requisição DELETE /api/v1/items/{id}.
// @Summary Exclui um item sem movimentações
// @Tags items
// @Security BearerAuth
// @Param id path string true "ID do item"
// @Success 204
// @Failure 403 {object} domain.ErrorResponse "Apenas administradores"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Item possui movimentações"
// @Router /items/{id} [delete]
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package supplier

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"ferrastock/internal/api/respond"
	"ferrastock/internal/domain"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/middleware"
)

// SupplierService define o contrato que o Handler espera da camada de Serviço.
type SupplierService interface {
	CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error)
	GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, supplier domain.Supplier) (domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler de fornecedores.
type Handler struct {
	Service SupplierService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SupplierService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterRoutes registra as rotas de fornecedores. Excluir exige papel admin.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/suppliers", func(r chi.Router) {
		r.Post("/", h.CreateSupplierHandler)
		r.Get("/", h.GetAllSuppliersHandler)
		r.Get("/{id}", h.GetSupplierByIDHandler)
		r.Put("/{id}", h.UpdateSupplierHandler)
		r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{id}", h.DeleteSupplierHandler)
	})
}

// CreateSupplierHandler lida com a requisição POST /api/v1/suppliers.
// @Summary Cadastra um fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supplier body domain.Supplier true "Dados do fornecedor"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Router /suppliers [post]
func (h *Handler) CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var supplier domain.Supplier
	if err := respond.DecodeJSON(r, &supplier); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateSupplier(r.Context(), supplier)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, created)
}

// GetSupplierByIDHandler lida com a requisição GET /api/v1/suppliers/{id}.
// @Summary Busca um fornecedor pelo ID
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} domain.ErrorResponse "Fornecedor não encontrado"
// @Router /suppliers/{id} [get]
func (h *Handler) GetSupplierByIDHandler(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.Service.GetSupplierByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, supplier)
}

// GetAllSuppliersHandler lida com a requisição GET /api/v1/suppliers.
// @Summary Lista fornecedores
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Supplier
// @Router /suppliers [get]
func (h *Handler) GetAllSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Service.GetAllSuppliers(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, suppliers)
}

// UpdateSupplierHandler lida com a requisição PUT /api/v1/suppliers/{id}.
// @Summary Atualiza um fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Param supplier body domain.Supplier true "Dados do fornecedor"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} domain.ErrorResponse "Fornecedor não encontrado"
// @Router /suppliers/{id} [put]
func (h *Handler) UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var supplier domain.Supplier
	if err := respond.DecodeJSON(r, &supplier); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateSupplier(r.Context(), chi.URLParam(r, "id"), supplier)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, updated)
}

// DeleteSupplierHandler lida com a requisição DELETE /api/v1/suppliers/{id}.
// @Summary Exclui um fornecedor sem itens vinculados
// @Tags suppliers
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 204
// @Failure 403 {object} domain.ErrorResponse "Apenas administradores"
// @Failure 409 {object} domain.ErrorResponse "Fornecedor possui itens"
// @Router /suppliers/{id} [delete]
func (h *Handler) DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

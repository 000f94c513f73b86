package dashboard

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"ferrastock/internal/api/respond"
	"ferrastock/internal/domain"
	"ferrastock/internal/pkg/logger"
)

// DashboardService define o contrato que o Handler espera da camada de Serviço.
type DashboardService interface {
	Summary(ctx context.Context) (domain.DashboardSummary, error)
}

type Handler struct {
	Service DashboardService
	Logger  logger.Logger
}

func NewHandler(svc DashboardService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.SummaryHandler)
}

// SummaryHandler lida com a requisição GET /api/v1/dashboard.
// @Summary Resumo do estoque
// @Description Total de itens, valor do estoque a custo, itens no ou abaixo do mínimo e últimas movimentações.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DashboardSummary
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /dashboard [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, summary)
}

package dashboardrepo

import (
	"context"
	"database/sql"
	"time"

	"ferrastock/internal/domain"
	"ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
)

// DashboardRepository lê os agregados do catálogo.
type DashboardRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewDashboardRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *DashboardRepository {
	return &DashboardRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// ItemTotals conta itens, soma quantidade × custo e conta itens no ou abaixo do mínimo.
func (r *DashboardRepository) ItemTotals(ctx context.Context) (domain.ItemTotals, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT COUNT(*),
               COALESCE(SUM(quantity * COALESCE(cost_price, 0)), 0),
               COUNT(*) FILTER (WHERE quantity <= min_stock)
        FROM items`

	var totals domain.ItemTotals
	if err := r.DB.QueryRowContext(ctxTimeout, query).Scan(&totals.TotalItems, &totals.StockValue, &totals.LowStockItems); err != nil {
		r.logger.Error("Falha ao calcular agregados do dashboard.", err)
		return domain.ItemTotals{}, errors.NewDBError("Falha ao calcular agregados", err)
	}
	return totals, nil
}

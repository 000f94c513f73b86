package dashboardservice

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ferrastock/internal/domain"
	"ferrastock/internal/pkg/logger"
)

// TotalsReader lê os agregados do catálogo.
type TotalsReader interface {
	ItemTotals(ctx context.Context) (domain.ItemTotals, error)
}

// MovementReader lê o ledger confirmado.
type MovementReader interface {
	ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error)
}

// Service monta o resumo do dashboard.
type Service struct {
	totals      TotalsReader
	movements   MovementReader
	recentLimit int
	logger      logger.Logger
}

// NewService cria o serviço; recentLimit é o número de movimentações recentes exibidas.
func NewService(totals TotalsReader, movements MovementReader, recentLimit int, logger logger.Logger) *Service {
	return &Service{totals: totals, movements: movements, recentLimit: recentLimit, logger: logger}
}

// Summary executa as consultas em paralelo e falha se qualquer uma falhar.
func (s *Service) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	var (
		totals domain.ItemTotals
		recent []domain.Movement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.totals.ItemTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.movements.ListMovements(gctx, domain.MovementFilter{Limit: s.recentLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Falha ao montar dashboard.", err)
		return domain.DashboardSummary{}, err
	}

	if recent == nil {
		recent = []domain.Movement{}
	}
	return domain.DashboardSummary{
		TotalItems:      totals.TotalItems,
		StockValue:      totals.StockValue,
		LowStockItems:   totals.LowStockItems,
		RecentMovements: recent,
	}, nil
}

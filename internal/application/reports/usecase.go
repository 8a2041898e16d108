// Package reports contiene el motor de reportes: balance económico,
// indicadores comparativos de ventas y ranking de productos.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

const defaultTopProducts = 10 // tamaño del ranking por defecto

// UseCase agrega ventas y movimientos confirmados sobre ventanas de tiempo.
// Solo lectura: delega todas las consultas en ReportRepository.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase construye el motor de reportes.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// GenerateBalance calcula el balance del período [start, end):
// ingresos (ventas completadas), costo de lo vendido al costo actual del
// producto, y neto = ingresos - costo.
func (uc *UseCase) GenerateBalance(ctx context.Context, start, end time.Time) (*dto.BalanceResponse, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidDateRange
	}
	revenue, cost, err := uc.reportRepo.GetSalesMetrics(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	return &dto.BalanceResponse{
		Start:   start,
		End:     end,
		Revenue: revenue.Round(2),
		Cost:    cost.Round(2),
		Net:     revenue.Sub(cost).Round(2),
	}, nil
}

// SalesIndicators compara el período actual contra el inmediatamente anterior
// de igual duración. Sin parámetros compara hoy contra ayer (UTC).
// Si el período anterior no tuvo ventas el delta es nil: nunca divide por cero.
func (uc *UseCase) SalesIndicators(ctx context.Context, start, end *time.Time) (*dto.SalesIndicatorsResponse, error) {
	curStart, curEnd, err := resolvePeriod(start, end)
	if err != nil {
		return nil, err
	}
	length := curEnd.Sub(curStart)
	prevStart := curStart.Add(-length)
	prevEnd := curStart

	// Dos consultas independientes en paralelo.
	type periodResult struct {
		res *repository.PeriodSalesResult
		err error
	}
	curCh := make(chan periodResult, 1)
	prevCh := make(chan periodResult, 1)
	go func() {
		res, err := uc.reportRepo.GetPeriodSales(ctx, curStart, curEnd)
		curCh <- periodResult{res, err}
	}()
	go func() {
		res, err := uc.reportRepo.GetPeriodSales(ctx, prevStart, prevEnd)
		prevCh <- periodResult{res, err}
	}()
	cur := <-curCh
	prev := <-prevCh
	if cur.err != nil {
		return nil, fmt.Errorf("indicadores: período actual: %w", cur.err)
	}
	if prev.err != nil {
		return nil, fmt.Errorf("indicadores: período anterior: %w", prev.err)
	}

	out := &dto.SalesIndicatorsResponse{
		Current: dto.PeriodSalesDTO{
			Start: curStart, End: curEnd,
			Count: cur.res.Count, Total: cur.res.Total.Round(2),
		},
		Previous: dto.PeriodSalesDTO{
			Start: prevStart, End: prevEnd,
			Count: prev.res.Count, Total: prev.res.Total.Round(2),
		},
	}
	if prev.res.Total.IsPositive() {
		delta := cur.res.Total.Sub(prev.res.Total).
			Div(prev.res.Total).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		out.DeltaPct = &delta
	}
	return out, nil
}

// TopSellingProducts agrega cantidades vendidas por producto en [start, end):
// descendente por unidades, empates por id ascendente, top 10.
func (uc *UseCase) TopSellingProducts(ctx context.Context, start, end *time.Time) ([]dto.TopProductResponse, error) {
	s, e, err := resolvePeriod(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.GetTopProducts(ctx, s, e, defaultTopProducts)
	if err != nil {
		return nil, fmt.Errorf("productos más vendidos: %w", err)
	}
	out := make([]dto.TopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductResponse{
			ProductID: r.ProductID,
			Code:      r.Code,
			Name:      r.Name,
			Units:     r.Units,
			Revenue:   r.Revenue.Round(2),
		})
	}
	return out, nil
}

// resolvePeriod aplica los defaults de la API: sin start se asume el inicio
// del día UTC en curso; sin end, ahora.
func resolvePeriod(start, end *time.Time) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	s := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	e := now
	if start != nil {
		s = start.UTC()
	}
	if end != nil {
		e = end.UTC()
	}
	if s.After(e) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return s, e, nil
}

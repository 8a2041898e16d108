package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse balance económico de un período [start, end).
// Cost se calcula con el costo actual de cada producto, no un snapshot.
type BalanceResponse struct {
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Net     decimal.Decimal `json:"net"`
}

// PeriodSalesDTO totales de un período para los indicadores.
type PeriodSalesDTO struct {
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// SalesIndicatorsResponse comparativa del período actual contra el anterior
// de igual duración. DeltaPct es nil cuando el período anterior no tuvo ventas.
type SalesIndicatorsResponse struct {
	Current  PeriodSalesDTO   `json:"current"`
	Previous PeriodSalesDTO   `json:"previous"`
	DeltaPct *decimal.Decimal `json:"delta_pct"`
}

// TopProductResponse fila del ranking de productos más vendidos.
type TopProductResponse struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Units     int64           `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

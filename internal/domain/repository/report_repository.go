package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult fila del ranking de productos más vendidos.
type TopProductResult struct {
	ProductID string
	Code      string
	Name      string
	Units     int64
	Revenue   decimal.Decimal
}

// PeriodSalesResult totales de ventas completadas de un período.
type PeriodSalesResult struct {
	Count int
	Total decimal.Decimal
}

// ReportRepository consultas de solo lectura para el motor de reportes.
// Todos los rangos son semiabiertos: [start, end).
type ReportRepository interface {
	// GetSalesMetrics devuelve ingresos (ventas completadas) y costo de lo vendido.
	// El costo se calcula con el costo ACTUAL del producto, no un snapshot;
	// el valor puede derivar si los costos cambian después de la venta.
	GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue, cost decimal.Decimal, err error)
	// GetPeriodSales devuelve conteo y suma de totales de ventas completadas.
	GetPeriodSales(ctx context.Context, start, end time.Time) (*PeriodSalesResult, error)
	// GetTopProducts agrega cantidades vendidas por producto, descendente por
	// unidades, empates por id de producto ascendente.
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
}

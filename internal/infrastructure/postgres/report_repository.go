package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el motor de reportes.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetSalesMetrics devuelve ingresos y costo de lo vendido en [start, end).
// El costo usa el costo ACTUAL del producto (p.cost), no un snapshot: el valor
// puede derivar si los costos cambian después de la venta.
// COALESCE devuelve cero en períodos sin ventas.
func (r *ReportRepo) GetSalesMetrics(
	ctx context.Context,
	start, end time.Time,
) (revenue, cost decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(i.subtotal),           0) AS revenue,
	    COALESCE(SUM(i.quantity * p.cost),  0) AS cost
	FROM sales s
	JOIN sale_items i ON i.sale_id   = s.id
	JOIN products   p ON p.id        = i.product_id
	WHERE s.status = 'completed'
	  AND s.date >= $1 AND s.date < $2`

	err = r.pool.QueryRow(ctx, query, start, end).Scan(&revenue, &cost)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.GetSalesMetrics: %w", err)
	}
	return revenue, cost, nil
}

// GetPeriodSales devuelve conteo y suma de totales de ventas completadas en [start, end).
func (r *ReportRepo) GetPeriodSales(
	ctx context.Context,
	start, end time.Time,
) (*repository.PeriodSalesResult, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(total), 0)
	FROM sales
	WHERE status = 'completed'
	  AND date >= $1 AND date < $2`

	var res repository.PeriodSalesResult
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&res.Count, &res.Total); err != nil {
		return nil, fmt.Errorf("reports.GetPeriodSales: %w", err)
	}
	return &res, nil
}

// GetTopProducts agrega unidades vendidas por producto en [start, end):
// descendente por unidades, empates por id de producto ascendente.
func (r *ReportRepo) GetTopProducts(
	ctx context.Context,
	start, end time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id, p.code, p.name,
	    SUM(i.quantity)  AS units,
	    SUM(i.subtotal)  AS revenue
	FROM sales s
	JOIN sale_items i ON i.sale_id = s.id
	JOIN products   p ON p.id      = i.product_id
	WHERE s.status = 'completed'
	  AND s.date >= $1 AND s.date < $2
	GROUP BY p.id, p.code, p.name
	ORDER BY units DESC, p.id ASC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.Units, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

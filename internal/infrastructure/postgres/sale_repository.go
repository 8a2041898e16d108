package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, total, status, user_id)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.Total, sale.Status, sale.UserID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus items, o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera de la venta (SELECT FOR UPDATE) y devuelve
// la venta con sus items. Solo dentro de una tx.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.get(id, true)
}

func (r *SaleRepo) get(id string, forUpdate bool) (*entity.Sale, error) {
	query := `SELECT id, date, total, status, user_id FROM sales WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Date, &s.Total, &s.Status, &s.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsFor([]string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

// ListByPeriod devuelve ventas con fecha en [start, end), ascendente por fecha, con items.
func (r *SaleRepo) ListByPeriod(start, end time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, date, total, status, user_id
		FROM sales WHERE date >= $1 AND date < $2
		ORDER BY date ASC`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Total, &s.Status, &s.UserID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.itemsFor(ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Items = items[s.ID]
	}
	return list, nil
}

// Totals agrega ventas del rango [start, end): completadas (conteo y suma) y anuladas (conteo).
func (r *SaleRepo) Totals(start, end time.Time) (*repository.DailySalesTotals, error) {
	query := `
		SELECT
		    COUNT(*) FILTER (WHERE status = 'completed')                    AS completed_count,
		    COALESCE(SUM(total) FILTER (WHERE status = 'completed'), 0)     AS completed_total,
		    COUNT(*) FILTER (WHERE status = 'voided')                       AS voided_count
		FROM sales
		WHERE date >= $1 AND date < $2`
	var t repository.DailySalesTotals
	err := r.q.QueryRow(context.Background(), query, start, end).Scan(
		&t.CompletedCount, &t.CompletedTotal, &t.VoidedCount)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	return &t, nil
}

// itemsFor carga los items de un conjunto de ventas en un solo query,
// con el nombre actual del producto adjunto a cada línea.
func (r *SaleRepo) itemsFor(saleIDs []string) (map[string][]*entity.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity, si.unit_price, si.subtotal
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1)
		ORDER BY si.id`
	rows, err := r.q.Query(context.Background(), query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]*entity.SaleItem)
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[it.SaleID] = append(out[it.SaleID], &it)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de la venta (transición completed -> voided).
func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
)

// DailySalesTotals consolidado de ventas de un día.
type DailySalesTotals struct {
	CompletedCount int
	CompletedTotal decimal.Decimal
	VoidedCount    int
}

// SaleRepository puerto de persistencia para ventas y sus items.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus items, o nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera de la venta para la transición de estado.
	// Devuelve la venta con sus items.
	GetForUpdate(id string) (*entity.Sale, error)
	UpdateStatus(id, status string) error
	// ListByPeriod devuelve ventas con fecha en [start, end), ascendente por fecha.
	ListByPeriod(start, end time.Time) ([]*entity.Sale, error)
	// Totals agrega ventas del rango [start, end): conteo y suma de completadas
	// más conteo de anuladas.
	Totals(start, end time.Time) (*DailySalesTotals, error)
}

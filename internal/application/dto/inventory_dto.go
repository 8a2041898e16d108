package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest registro de un movimiento de inventario.
// Quantity es positivo para in/out; adjustment admite signo.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementResponse movimiento persistido con snapshots de stock.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	Reason      string    `json:"reason"`
	Date        time.Time `json:"date"`
	CreatedBy   string    `json:"created_by"`
}

// LowStockAlertResponse producto en o bajo su stock mínimo.
type LowStockAlertResponse struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

// InventoryProductResponse vista de inventario de un producto activo:
// solo lo que se necesita para revisar existencias.
type InventoryProductResponse struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	Price     decimal.Decimal `json:"price"`
}

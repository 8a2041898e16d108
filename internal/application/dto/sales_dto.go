package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta entrante.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RegisterSaleRequest registro de una venta.
type RegisterSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
}

// VoidSaleRequest anulación de una venta (solo admin).
type VoidSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus items.
type SaleResponse struct {
	ID     string             `json:"id"`
	Date   time.Time          `json:"date"`
	Total  decimal.Decimal    `json:"total"`
	Status string             `json:"status"`
	UserID string             `json:"user_id"`
	Items  []SaleItemResponse `json:"items"`
}

// DailyConsolidationResponse consolidado de ventas del día (UTC).
type DailyConsolidationResponse struct {
	Date           string          `json:"date"`
	CompletedCount int             `json:"completed_count"`
	CompletedTotal decimal.Decimal `json:"completed_total"`
	VoidedCount    int             `json:"voided_count"`
}

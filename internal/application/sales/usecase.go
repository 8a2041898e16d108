package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/application/inventory"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// UseCase motor de ventas: registra ventas descontando inventario en una sola
// transacción, anula ventas reponiendo stock y sirve las proyecciones de lectura.
type UseCase struct {
	txRunner    TxRunner
	inventoryUC *inventory.UseCase
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewUseCase construye el motor de ventas.
func NewUseCase(
	txRunner TxRunner,
	inventoryUC *inventory.UseCase,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

// SaleLine línea de una venta entrante.
type SaleLine struct {
	ProductID string
	Quantity  int
}

// RegisterSale valida las líneas, y en una transacción bloquea cada producto,
// descuenta stock (movimiento tipo sale con cantidad negada), snapshotea el
// precio unitario vigente, y persiste venta, items y auditoría.
// Si cualquier línea falla (producto inexistente/inactivo, stock insuficiente),
// se revierte la venta completa.
func (uc *UseCase) RegisterSale(ctx context.Context, userID string, lines []SaleLine) (*entity.Sale, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Pre-validación de lectura fuera de la tx; la autoridad final es la fila
	// bloqueada dentro de la transacción.
	for _, line := range lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive() {
			return nil, domain.ErrNotFound
		}
		if product.Stock < line.Quantity {
			return nil, domain.ErrInsufficientStock
		}
	}

	now := time.Now().UTC()
	saleID := uuid.New().String()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		total := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(lines))
		for _, line := range lines {
			// Bloquea la fila, verifica stock, descuenta y registra el movimiento.
			product, err := uc.inventoryUC.RegisterSaleOutInTx(
				movRepo, productRepo,
				line.ProductID, userID, saleID,
				line.Quantity, now,
			)
			if err != nil {
				return err
			}
			// Precio leído bajo el lock: snapshot inmutable de la línea.
			unitPrice := product.Price
			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   line.ProductID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   unitPrice,
				Subtotal:    subtotal,
			})
		}

		sale = &entity.Sale{
			ID:     saleID,
			Date:   now,
			Total:  total,
			Status: entity.SaleStatusCompleted,
			UserID: userID,
			Items:  items,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:          uuid.New().String(),
			UserID:      userID,
			Action:      entity.ActionSaleRegister,
			Description: fmt.Sprintf("Venta %s registrada: %d items, total %s", saleID, len(items), total.StringFixed(2)),
			Date:        now,
		})
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// VoidSale anula una venta completada: marca voided, repone exactamente las
// cantidades descontadas (un movimiento void-restock por item) y audita, todo
// en una transacción. Solo es legal desde completed; voided es terminal.
func (uc *UseCase) VoidSale(ctx context.Context, saleID, userID, reason string) (*entity.Sale, error) {
	if reason == "" {
		reason = "Sin motivo especificado"
	}
	now := time.Now().UTC()
	var voided *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleStatusCompleted {
			return domain.ErrConflict
		}
		if err := saleRepo.UpdateStatus(saleID, entity.SaleStatusVoided); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := uc.inventoryUC.RegisterVoidRestockInTx(
				movRepo, productRepo,
				item.ProductID, userID, saleID,
				item.Quantity, now,
			); err != nil {
				return err
			}
		}
		sale.Status = entity.SaleStatusVoided
		voided = sale
		return auditRepo.Create(&entity.AuditEntry{
			ID:          uuid.New().String(),
			UserID:      userID,
			Action:      entity.ActionSaleVoid,
			Description: fmt.Sprintf("Venta %s anulada: %s", saleID, reason),
			Date:        now,
		})
	})
	if err != nil {
		return nil, err
	}
	return voided, nil
}

// SalesForPeriod devuelve ventas con fecha en [start, end), ascendente por fecha.
func (uc *UseCase) SalesForPeriod(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidDateRange
	}
	return uc.saleRepo.ListByPeriod(start, end)
}

// SaleByID devuelve la venta con sus items, o ErrNotFound.
func (uc *UseCase) SaleByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ConsolidateDailySales agrega las ventas confirmadas del día calendario UTC
// en curso: conteo y suma de completadas más conteo de anuladas.
func (uc *UseCase) ConsolidateDailySales(ctx context.Context) (*repository.DailySalesTotals, time.Time, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	totals, err := uc.saleRepo.Totals(dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, time.Time{}, err
	}
	return totals, dayStart, nil
}

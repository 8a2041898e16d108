package inventory

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// UseCase motor de inventario: registra movimientos de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE), produce alertas de stock bajo y
// sirve el historial de movimientos.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewUseCase construye el motor de inventario.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es positivo para in/out; adjustment admite signo.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	Reason    string
	UserID    string
}

// signedQuantity traduce (tipo, cantidad) al delta con signo que se aplica al stock.
func signedQuantity(movType string, quantity int) (int, error) {
	switch movType {
	case entity.MovementTypeIn, entity.MovementTypeVoidRestock:
		if quantity <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return quantity, nil
	case entity.MovementTypeOut, entity.MovementTypeSale:
		if quantity <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return -quantity, nil
	case entity.MovementTypeAdjustment:
		if quantity == 0 {
			return 0, domain.ErrInvalidInput
		}
		return quantity, nil
	default:
		return 0, domain.ErrInvalidInput
	}
}

// RegisterMovement valida producto y tipo, y dentro de una transacción bloquea
// la fila del producto, aplica el delta (rechazando stock negativo), inserta el
// movimiento con stock antes/después y la entrada de auditoría.
// Commit o Rollback completo: el stock nunca cambia sin su movimiento.
func (uc *UseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	delta, err := signedQuantity(input.Type, input.Quantity)
	if err != nil {
		return nil, err
	}

	// Validación fuera de la tx; la verificación definitiva ocurre sobre la fila bloqueada.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive() {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	var mov *entity.InventoryMovement

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil || !locked.IsActive() {
			return domain.ErrNotFound
		}
		newStock := locked.Stock + delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(locked.ID, newStock); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			ID:          uuid.New().String(),
			ProductID:   locked.ID,
			ProductName: locked.Name,
			Type:        input.Type,
			Quantity:    delta,
			StockBefore: locked.Stock,
			StockAfter:  newStock,
			Reason:      input.Reason,
			Date:        now,
			CreatedBy:   input.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:          uuid.New().String(),
			UserID:      input.UserID,
			Action:      entity.ActionMovement,
			Description: fmt.Sprintf("Movimiento %s de %d unidades en %s (%s)", input.Type, input.Quantity, locked.Name, input.Reason),
			Date:        now,
		})
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterSaleOutInTx descuenta stock por una línea de venta usando los
// repositorios de la transacción del caller (el motor de ventas). Bloquea la
// fila del producto y devuelve el producto leído bajo el lock, de donde el
// caller toma el precio a snapshotear.
func (uc *UseCase) RegisterSaleOutInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID, userID, saleID string,
	quantity int,
	now time.Time,
) (*entity.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive() {
		return nil, domain.ErrNotFound
	}
	if product.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}
	newStock := product.Stock - quantity
	if err := productRepo.UpdateStock(productID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: product.Name,
		Type:        entity.MovementTypeSale,
		Quantity:    -quantity,
		StockBefore: product.Stock,
		StockAfter:  newStock,
		Reason:      "Venta " + saleID,
		Date:        now,
		CreatedBy:   userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return product, nil
}

// RegisterVoidRestockInTx repone el stock de una línea al anular una venta,
// dentro de la transacción del caller.
func (uc *UseCase) RegisterVoidRestockInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID, userID, saleID string,
	quantity int,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	newStock := product.Stock + quantity
	if err := productRepo.UpdateStock(productID, newStock); err != nil {
		return err
	}
	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: product.Name,
		Type:        entity.MovementTypeVoidRestock,
		Quantity:    quantity,
		StockBefore: product.Stock,
		StockAfter:  newStock,
		Reason:      "Anulación venta " + saleID,
		Date:        now,
		CreatedBy:   userID,
	}
	return movRepo.Create(mov)
}

// LowStockAlerts devuelve una secuencia perezosa y reiniciable de productos
// con stock en o bajo su mínimo, ordenados por stock ascendente y nombre.
// Cada range vuelve a consultar, así que siempre refleja el estado confirmado.
func (uc *UseCase) LowStockAlerts(ctx context.Context) iter.Seq2[*entity.Product, error] {
	return func(yield func(*entity.Product, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}
		list, err := uc.productRepo.ListLowStock()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, p := range list {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// MovementHistory devuelve movimientos filtrados por producto y rango
// semiabierto [from, to), ordenados por fecha descendente.
func (uc *UseCase) MovementHistory(ctx context.Context, productID *string, from, to *time.Time) ([]*entity.InventoryMovement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.ErrInvalidDateRange
	}
	return uc.movRepo.List(repository.MovementFilter{ProductID: productID, From: from, To: to})
}

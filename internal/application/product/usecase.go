package product

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/inventory"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// UseCase CRUD de productos con desactivación lógica. Las mutaciones escriben
// su entrada de auditoría en la misma transacción.
type UseCase struct {
	txRunner TxRunner
	repo     repository.ProductRepository
}

// TxRunner reusa el runner del motor de inventario: las mutaciones de catálogo
// comparten la misma garantía de atomicidad (cambio + auditoría).
type TxRunner = inventory.TxRunner

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, repo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto. Código duplicado devuelve ErrDuplicate.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.Stock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	minStock := in.MinStock
	if minStock == 0 {
		minStock = 5 // umbral por defecto
	}
	p := &entity.Product{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		MinStock:    minStock,
		Status:      entity.ProductStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := productRepo.Create(p); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:          uuid.New().String(),
			UserID:      userID,
			Action:      entity.ActionProductCreate,
			Description: fmt.Sprintf("Producto creado: %s (%s)", p.Name, p.Code),
			Date:        now,
		})
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto activo, o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive() {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListActive lista los productos activos del catálogo.
func (uc *UseCase) ListActive(ctx context.Context) ([]*entity.Product, error) {
	return uc.repo.ListActive()
}

// Update edita los campos del producto. El stock no se toca aquí: solo cambia
// vía movimientos de inventario.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = in.Name
	p.Category = in.Category
	p.Description = in.Description
	p.Price = in.Price
	p.Cost = in.Cost
	p.MinStock = in.MinStock
	p.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := productRepo.Update(p); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:          uuid.New().String(),
			UserID:      userID,
			Action:      entity.ActionProductUpdate,
			Description: fmt.Sprintf("Producto actualizado: %s (ID: %s)", p.Name, p.ID),
			Date:        p.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Deactivate desactivación lógica: el producto deja de venderse pero sigue
// resoluble desde ventas y movimientos históricos.
func (uc *UseCase) Deactivate(ctx context.Context, userID, id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	p.Status = entity.ProductStatusInactive
	p.UpdatedAt = time.Now().UTC()

	return uc.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := productRepo.Update(p); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:          uuid.New().String(),
			UserID:      userID,
			Action:      entity.ActionProductDeactivate,
			Description: fmt.Sprintf("Producto desactivado: %s (ID: %s)", p.Name, p.ID),
			Date:        p.UpdatedAt,
		})
	})
}

package product_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/product"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/infrastructure/memory"
)

const testUser = "00000000-0000-0000-0000-000000000001"

func newFixture(t *testing.T) (*memory.Ledger, *product.UseCase) {
	t.Helper()
	led := memory.NewLedger()
	return led, product.NewUseCase(led, led.Products())
}

func createRequest(code string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:  code,
		Name:  "Producto " + code,
		Price: decimal.RequireFromString("5.00"),
		Cost:  decimal.RequireFromString("2.00"),
		Stock: 10,
	}
}

func TestCreate(t *testing.T) {
	led, uc := newFixture(t)

	p, err := uc.Create(context.Background(), testUser, createRequest("P-001"))
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, p.Status)
	assert.Equal(t, 5, p.MinStock, "stock mínimo por defecto")
	assert.Len(t, led.AuditEntries(), 1)
}

func TestCreate_CodigoDuplicado(t *testing.T) {
	_, uc := newFixture(t)
	_, err := uc.Create(context.Background(), testUser, createRequest("P-001"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testUser, createRequest("P-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_Validaciones(t *testing.T) {
	_, uc := newFixture(t)

	in := createRequest("P-001")
	in.Code = ""
	_, err := uc.Create(context.Background(), testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "código requerido")

	in = createRequest("P-002")
	in.Price = decimal.RequireFromString("-1")
	_, err = uc.Create(context.Background(), testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	in = createRequest("P-003")
	in.Stock = -5
	_, err = uc.Create(context.Background(), testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock negativo")
}

func TestGetByID_InactivoEsNotFound(t *testing.T) {
	_, uc := newFixture(t)
	p, err := uc.Create(context.Background(), testUser, createRequest("P-001"))
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(context.Background(), testUser, p.ID))

	_, err = uc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NoTocaElStock(t *testing.T) {
	led, uc := newFixture(t)
	p, err := uc.Create(context.Background(), testUser, createRequest("P-001"))
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), testUser, p.ID, dto.UpdateProductRequest{
		Name:     "Producto renombrado",
		Price:    decimal.RequireFromString("7.50"),
		Cost:     decimal.RequireFromString("3.00"),
		MinStock: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Producto renombrado", out.Name)
	assert.Equal(t, 8, out.MinStock)

	got, err := led.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock, "el stock solo cambia vía movimientos")
}

func TestUpdate_Inexistente(t *testing.T) {
	_, uc := newFixture(t)
	_, err := uc.Update(context.Background(), testUser, uuid.New().String(), dto.UpdateProductRequest{
		Name: "X",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeactivate_SaleDelListado(t *testing.T) {
	_, uc := newFixture(t)
	a, err := uc.Create(context.Background(), testUser, createRequest("A-001"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), testUser, createRequest("B-001"))
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(context.Background(), testUser, a.ID))

	list, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B-001", list[0].Code)
}

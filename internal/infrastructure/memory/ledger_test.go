package memory_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/infrastructure/memory"
)

func newTestProduct(code string) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      "Producto " + code,
		Price:     decimal.RequireFromString("5.00"),
		Cost:      decimal.RequireFromString("2.00"),
		Stock:     10,
		MinStock:  3,
		Status:    entity.ProductStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Mismo contrato que el adaptador PostgreSQL: el código de producto es único
// y el duplicado devuelve ErrDuplicate sin tocar la fila existente.
func TestLedger_ProductoConCodigoDuplicado(t *testing.T) {
	led := memory.NewLedger()
	products := led.Products()

	original := newTestProduct("P-001")
	require.NoError(t, products.Create(original))

	dup := newTestProduct("P-001")
	err := products.Create(dup)
	require.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := products.GetByID(original.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, original.Name, got.Name)
	assert.Equal(t, 10, got.Stock)

	missing, err := products.GetByID(dup.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

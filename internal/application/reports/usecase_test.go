package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/punto-venta/internal/application/reports"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/infrastructure/memory"
)

const testUser = "00000000-0000-0000-0000-000000000001"

func newFixture(t *testing.T) (*memory.Ledger, *reports.UseCase) {
	t.Helper()
	led := memory.NewLedger()
	return led, reports.NewUseCase(led.Reports())
}

func seedProduct(t *testing.T, led *memory.Ledger, code, cost string) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      "Producto " + code,
		Price:     decimal.RequireFromString("5.00"),
		Cost:      decimal.RequireFromString(cost),
		Stock:     100,
		MinStock:  3,
		Status:    entity.ProductStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, led.Products().Create(p))
	return p
}

// seedSale registra una venta completada con una línea, en la fecha dada.
func seedSale(t *testing.T, led *memory.Ledger, p *entity.Product, quantity int, unitPrice string, date time.Time) *entity.Sale {
	t.Helper()
	price := decimal.RequireFromString(unitPrice)
	subtotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	sale := &entity.Sale{
		ID:     uuid.New().String(),
		Date:   date,
		Total:  subtotal,
		Status: entity.SaleStatusCompleted,
		UserID: testUser,
	}
	require.NoError(t, led.Sales().Create(sale))
	require.NoError(t, led.Sales().CreateItem(&entity.SaleItem{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: price,
		Subtotal:  subtotal,
	}))
	return sale
}

func TestGenerateBalance(t *testing.T) {
	led, uc := newFixture(t)
	p := seedProduct(t, led, "P-001", "2.00")
	now := time.Now().UTC()
	seedSale(t, led, p, 3, "5.00", now) // ingresos 15.00, costo 6.00

	out, err := uc.GenerateBalance(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, out.Revenue.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, out.Cost.Equal(decimal.RequireFromString("6.00")))
	assert.True(t, out.Net.Equal(decimal.RequireFromString("9.00")))
}

// El costo se valora al costo ACTUAL del producto: cambiarlo después de la
// venta cambia el balance del período ya cerrado.
func TestGenerateBalance_CostoActualNoSnapshot(t *testing.T) {
	led, uc := newFixture(t)
	p := seedProduct(t, led, "P-001", "2.00")
	now := time.Now().UTC()
	seedSale(t, led, p, 3, "5.00", now)

	p.Cost = decimal.RequireFromString("4.00")
	require.NoError(t, led.Products().Update(p))

	out, err := uc.GenerateBalance(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, out.Cost.Equal(decimal.RequireFromString("12.00")), "3 × costo actual 4.00")
	assert.True(t, out.Net.Equal(decimal.RequireFromString("3.00")))
}

func TestGenerateBalance_RangoInvalido(t *testing.T) {
	_, uc := newFixture(t)
	now := time.Now().UTC()
	_, err := uc.GenerateBalance(context.Background(), now, now.Add(-time.Minute))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

// Sin ventas en el período anterior, el delta es nil: nunca se divide por cero.
func TestSalesIndicators_SinVentasPreviasDeltaNil(t *testing.T) {
	led, uc := newFixture(t)
	p := seedProduct(t, led, "P-001", "2.00")
	now := time.Now().UTC()
	seedSale(t, led, p, 2, "5.00", now)

	start := now.Add(-time.Hour)
	end := now.Add(time.Minute)
	out, err := uc.SalesIndicators(context.Background(), &start, &end)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Current.Count)
	assert.True(t, out.Current.Total.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 0, out.Previous.Count)
	assert.Nil(t, out.DeltaPct, "período anterior sin ventas no produce delta")
}

func TestSalesIndicators_DeltaPorcentual(t *testing.T) {
	led, uc := newFixture(t)
	p := seedProduct(t, led, "P-001", "2.00")
	now := time.Now().UTC()
	start := now.Add(-time.Hour)
	end := now

	// Período actual: 30.00. Período anterior (la hora previa): 20.00.
	seedSale(t, led, p, 6, "5.00", now.Add(-30*time.Minute))
	seedSale(t, led, p, 4, "5.00", now.Add(-90*time.Minute))

	out, err := uc.SalesIndicators(context.Background(), &start, &end)
	require.NoError(t, err)
	require.NotNil(t, out.DeltaPct)
	assert.True(t, out.DeltaPct.Equal(decimal.RequireFromString("50.00")),
		"de 20.00 a 30.00 es +50%%, se obtuvo %s", out.DeltaPct)
}

func TestTopSellingProducts_OrdenPorUnidades(t *testing.T) {
	led, uc := newFixture(t)
	a := seedProduct(t, led, "A-001", "2.00")
	b := seedProduct(t, led, "B-001", "2.00")
	now := time.Now().UTC()

	seedSale(t, led, b, 3, "5.00", now)
	seedSale(t, led, a, 5, "5.00", now)

	start := now.Add(-time.Hour)
	end := now.Add(time.Minute)
	out, err := uc.TopSellingProducts(context.Background(), &start, &end)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, a.ID, out[0].ProductID, "5 unidades antes que 3")
	assert.EqualValues(t, 5, out[0].Units)
	assert.Equal(t, b.ID, out[1].ProductID)
	assert.EqualValues(t, 3, out[1].Units)
}

// Las ventas anuladas no cuentan en ningún reporte.
func TestReportes_IgnoranVentasAnuladas(t *testing.T) {
	led, uc := newFixture(t)
	p := seedProduct(t, led, "P-001", "2.00")
	now := time.Now().UTC()
	sale := seedSale(t, led, p, 3, "5.00", now)
	require.NoError(t, led.Sales().UpdateStatus(sale.ID, entity.SaleStatusVoided))

	balance, err := uc.GenerateBalance(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, balance.Revenue.IsZero())

	start := now.Add(-time.Hour)
	end := now.Add(time.Minute)
	top, err := uc.TopSellingProducts(context.Background(), &start, &end)
	require.NoError(t, err)
	assert.Empty(t, top)
}

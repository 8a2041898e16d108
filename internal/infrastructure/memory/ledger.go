// Package memory implementa el Ledger Store completo en memoria: los mismos
// puertos que el adaptador PostgreSQL, con transacciones copy-on-write para
// que un error revierta todo igual que un Rollback. Se usa en desarrollo sin
// base de datos y en los tests de los motores.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/application/inventory"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Ledger)(nil)
	_ sales.TxRunner     = (*Ledger)(nil)
)

// Ledger store transaccional en memoria. Un mutex serializa las transacciones,
// equivalente al aislamiento más estricto del caso PostgreSQL.
type Ledger struct {
	mu sync.Mutex
	st *state
}

type state struct {
	products  map[string]*entity.Product
	saleHdrs  map[string]*entity.Sale // cabeceras sin items
	saleItems map[string][]*entity.SaleItem
	movements []*entity.InventoryMovement
	audits    []*entity.AuditEntry
	users     map[string]*entity.User
}

// NewLedger construye un ledger vacío.
func NewLedger() *Ledger {
	return &Ledger{st: newState()}
}

func newState() *state {
	return &state{
		products:  make(map[string]*entity.Product),
		saleHdrs:  make(map[string]*entity.Sale),
		saleItems: make(map[string][]*entity.SaleItem),
		users:     make(map[string]*entity.User),
	}
}

// clone copia el estado; las entidades se copian por valor para que los
// cambios dentro de la tx no sean visibles hasta el commit.
func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, h := range s.saleHdrs {
		ch := *h
		ch.Items = nil
		c.saleHdrs[id] = &ch
	}
	for id, items := range s.saleItems {
		citems := make([]*entity.SaleItem, len(items))
		for i, it := range items {
			cit := *it
			citems[i] = &cit
		}
		c.saleItems[id] = citems
	}
	c.movements = append(c.movements, s.movements...)
	c.audits = append(c.audits, s.audits...)
	for id, u := range s.users {
		cu := *u
		c.users[id] = &cu
	}
	return c
}

// binding resuelve estado y bloqueo de un repositorio: dentro de una tx apunta
// al clon sin bloquear (el mutex ya está tomado); fuera, bloquea por operación.
type binding struct {
	led *Ledger
	tx  *state
}

func (b binding) do(fn func(st *state)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.led.mu.Lock()
	defer b.led.mu.Unlock()
	fn(b.led.st)
}

// ── Transacciones ────────────────────────────────────────────────────────────

// Run ejecuta fn sobre un clon del estado; con éxito el clon reemplaza al
// estado (commit), con error se descarta (rollback).
func (l *Ledger) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx := l.st.clone()
	b := binding{led: l, tx: tx}
	if err := fn(&movementRepo{b}, &productRepo{b}, &auditRepo{b}); err != nil {
		return err
	}
	l.st = tx
	return nil
}

// RunSale igual que Run, cubriendo además el repositorio de ventas.
func (l *Ledger) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx := l.st.clone()
	b := binding{led: l, tx: tx}
	if err := fn(&saleRepo{b}, &movementRepo{b}, &productRepo{b}, &auditRepo{b}); err != nil {
		return err
	}
	l.st = tx
	return nil
}

// Accesores fuera de transacción (lecturas y escrituras directas).

func (l *Ledger) Products() repository.ProductRepository {
	return &productRepo{binding{led: l}}
}

func (l *Ledger) Sales() repository.SaleRepository {
	return &saleRepo{binding{led: l}}
}

func (l *Ledger) Movements() repository.InventoryMovementRepository {
	return &movementRepo{binding{led: l}}
}

func (l *Ledger) Audits() repository.AuditRepository {
	return &auditRepo{binding{led: l}}
}

func (l *Ledger) Users() repository.UserRepository {
	return &userRepo{binding{led: l}}
}

func (l *Ledger) Reports() repository.ReportRepository {
	return &reportRepo{binding{led: l}}
}

// AuditEntries devuelve una copia del registro de auditoría (para tests).
func (l *Ledger) AuditEntries() []*entity.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*entity.AuditEntry, len(l.st.audits))
	for i, e := range l.st.audits {
		ce := *e
		out[i] = &ce
	}
	return out
}

// ── ProductRepository ────────────────────────────────────────────────────────

type productRepo struct{ b binding }

var _ repository.ProductRepository = (*productRepo)(nil)

// Create persiste un producto nuevo. Código duplicado devuelve ErrDuplicate,
// igual que el adaptador PostgreSQL con su índice único.
func (r *productRepo) Create(p *entity.Product) (err error) {
	r.b.do(func(st *state) {
		for _, existing := range st.products {
			if existing.Code == p.Code {
				err = domain.ErrDuplicate
				return
			}
		}
		cp := *p
		st.products[p.ID] = &cp
	})
	return err
}

func (r *productRepo) GetByID(id string) (out *entity.Product, err error) {
	r.b.do(func(st *state) {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
	})
	return out, nil
}

func (r *productRepo) GetByCode(code string) (out *entity.Product, err error) {
	r.b.do(func(st *state) {
		for _, p := range st.products {
			if p.Code == code {
				cp := *p
				out = &cp
				return
			}
		}
	})
	return out, nil
}

// GetForUpdate en memoria no necesita lock de fila: el mutex del ledger ya
// serializa la transacción completa.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(p *entity.Product) error {
	r.b.do(func(st *state) {
		existing, ok := st.products[p.ID]
		if !ok {
			return
		}
		stock := existing.Stock // el stock solo cambia vía UpdateStock
		cp := *p
		cp.Stock = stock
		st.products[p.ID] = &cp
	})
	return nil
}

func (r *productRepo) UpdateStock(id string, stock int) error {
	r.b.do(func(st *state) {
		if p, ok := st.products[id]; ok {
			p.Stock = stock
			p.UpdatedAt = time.Now().UTC()
		}
	})
	return nil
}

func (r *productRepo) ListActive() (list []*entity.Product, err error) {
	r.b.do(func(st *state) {
		for _, p := range st.products {
			if p.IsActive() {
				cp := *p
				list = append(list, &cp)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *productRepo) ListLowStock() (list []*entity.Product, err error) {
	r.b.do(func(st *state) {
		for _, p := range st.products {
			if p.IsActive() && p.Stock <= p.MinStock {
				cp := *p
				list = append(list, &cp)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Stock != list[j].Stock {
			return list[i].Stock < list[j].Stock
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// ── SaleRepository ───────────────────────────────────────────────────────────

type saleRepo struct{ b binding }

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(s *entity.Sale) error {
	r.b.do(func(st *state) {
		cs := *s
		cs.Items = nil
		st.saleHdrs[s.ID] = &cs
	})
	return nil
}

func (r *saleRepo) CreateItem(it *entity.SaleItem) error {
	r.b.do(func(st *state) {
		cit := *it
		st.saleItems[it.SaleID] = append(st.saleItems[it.SaleID], &cit)
	})
	return nil
}

func (r *saleRepo) GetByID(id string) (out *entity.Sale, err error) {
	r.b.do(func(st *state) {
		if h, ok := st.saleHdrs[id]; ok {
			out = assemble(st, h)
		}
	})
	return out, nil
}

func (r *saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) UpdateStatus(id, status string) error {
	r.b.do(func(st *state) {
		if h, ok := st.saleHdrs[id]; ok {
			h.Status = status
		}
	})
	return nil
}

func (r *saleRepo) ListByPeriod(start, end time.Time) (list []*entity.Sale, err error) {
	r.b.do(func(st *state) {
		for _, h := range st.saleHdrs {
			if !h.Date.Before(start) && h.Date.Before(end) {
				list = append(list, assemble(st, h))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

func (r *saleRepo) Totals(start, end time.Time) (*repository.DailySalesTotals, error) {
	t := &repository.DailySalesTotals{CompletedTotal: decimal.Zero}
	r.b.do(func(st *state) {
		for _, h := range st.saleHdrs {
			if h.Date.Before(start) || !h.Date.Before(end) {
				continue
			}
			switch h.Status {
			case entity.SaleStatusCompleted:
				t.CompletedCount++
				t.CompletedTotal = t.CompletedTotal.Add(h.Total)
			case entity.SaleStatusVoided:
				t.VoidedCount++
			}
		}
	})
	return t, nil
}

// assemble arma la venta con sus items, adjuntando el nombre actual del
// producto a cada línea (el join del adaptador SQL).
func assemble(st *state, h *entity.Sale) *entity.Sale {
	cs := *h
	cs.Items = nil
	for _, it := range st.saleItems[h.ID] {
		cit := *it
		if p, ok := st.products[cit.ProductID]; ok {
			cit.ProductName = p.Name
		}
		cs.Items = append(cs.Items, &cit)
	}
	return &cs
}

// ── InventoryMovementRepository ──────────────────────────────────────────────

type movementRepo struct{ b binding }

var _ repository.InventoryMovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	r.b.do(func(st *state) {
		cm := *m
		st.movements = append(st.movements, &cm)
	})
	return nil
}

func (r *movementRepo) List(filter repository.MovementFilter) (list []*entity.InventoryMovement, err error) {
	r.b.do(func(st *state) {
		for _, m := range st.movements {
			if filter.ProductID != nil && m.ProductID != *filter.ProductID {
				continue
			}
			if filter.From != nil && m.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !m.Date.Before(*filter.To) {
				continue
			}
			cm := *m
			if p, ok := st.products[cm.ProductID]; ok {
				cm.ProductName = p.Name
			}
			list = append(list, &cm)
		}
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

// ── AuditRepository ──────────────────────────────────────────────────────────

type auditRepo struct{ b binding }

var _ repository.AuditRepository = (*auditRepo)(nil)

func (r *auditRepo) Create(e *entity.AuditEntry) error {
	r.b.do(func(st *state) {
		ce := *e
		st.audits = append(st.audits, &ce)
	})
	return nil
}

// ── UserRepository ───────────────────────────────────────────────────────────

type userRepo struct{ b binding }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(u *entity.User) error {
	r.b.do(func(st *state) {
		cu := *u
		st.users[u.ID] = &cu
	})
	return nil
}

func (r *userRepo) GetByID(id string) (out *entity.User, err error) {
	r.b.do(func(st *state) {
		if u, ok := st.users[id]; ok {
			cu := *u
			out = &cu
		}
	})
	return out, nil
}

func (r *userRepo) FindByEmail(email string) (out *entity.User, err error) {
	r.b.do(func(st *state) {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				cu := *u
				out = &cu
				return
			}
		}
	})
	return out, nil
}

// ── ReportRepository ─────────────────────────────────────────────────────────

type reportRepo struct{ b binding }

var _ repository.ReportRepository = (*reportRepo)(nil)

func (r *reportRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue, cost decimal.Decimal, err error) {
	revenue, cost = decimal.Zero, decimal.Zero
	r.b.do(func(st *state) {
		for _, h := range st.saleHdrs {
			if h.Status != entity.SaleStatusCompleted || h.Date.Before(start) || !h.Date.Before(end) {
				continue
			}
			for _, it := range st.saleItems[h.ID] {
				revenue = revenue.Add(it.Subtotal)
				// Costo al valor ACTUAL del producto, igual que el adaptador SQL.
				if p, ok := st.products[it.ProductID]; ok {
					cost = cost.Add(p.Cost.Mul(decimal.NewFromInt(int64(it.Quantity))))
				}
			}
		}
	})
	return revenue, cost, nil
}

func (r *reportRepo) GetPeriodSales(ctx context.Context, start, end time.Time) (*repository.PeriodSalesResult, error) {
	res := &repository.PeriodSalesResult{Total: decimal.Zero}
	r.b.do(func(st *state) {
		for _, h := range st.saleHdrs {
			if h.Status != entity.SaleStatusCompleted || h.Date.Before(start) || !h.Date.Before(end) {
				continue
			}
			res.Count++
			res.Total = res.Total.Add(h.Total)
		}
	})
	return res, nil
}

func (r *reportRepo) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	agg := make(map[string]*repository.TopProductResult)
	r.b.do(func(st *state) {
		for _, h := range st.saleHdrs {
			if h.Status != entity.SaleStatusCompleted || h.Date.Before(start) || !h.Date.Before(end) {
				continue
			}
			for _, it := range st.saleItems[h.ID] {
				row, ok := agg[it.ProductID]
				if !ok {
					row = &repository.TopProductResult{ProductID: it.ProductID, Revenue: decimal.Zero}
					if p, found := st.products[it.ProductID]; found {
						row.Code = p.Code
						row.Name = p.Name
					}
					agg[it.ProductID] = row
				}
				row.Units += int64(it.Quantity)
				row.Revenue = row.Revenue.Add(it.Subtotal)
			}
		}
	})
	results := make([]repository.TopProductResult, 0, len(agg))
	for _, row := range agg {
		results = append(results, *row)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Units != results[j].Units {
			return results[i].Units > results[j].Units
		}
		return results[i].ProductID < results[j].ProductID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

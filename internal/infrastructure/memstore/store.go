// Package memstore implementa los repositorios y el TxRunner en memoria.
// Cada transacción trabaja sobre una copia del estado y la publica al confirmar;
// un mutex global hace las veces de bloqueo de filas (las transacciones se serializan).
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

type state struct {
	seqs       map[string]int64
	products   map[int64]entity.Product
	orders     map[entity.OrderKind]map[int64]entity.Order
	lines      map[entity.OrderKind][]entity.OrderLine
	movements  []entity.StockMovement
	users      map[int64]entity.User
	categories map[int64]entity.Category
	suppliers  map[int64]entity.Supplier
	customers  map[int64]entity.Customer
	expenses   []entity.Expense
}

func newState() *state {
	return &state{
		seqs:     map[string]int64{},
		products: map[int64]entity.Product{},
		orders: map[entity.OrderKind]map[int64]entity.Order{
			entity.OrderPurchase: {},
			entity.OrderSale:     {},
		},
		lines:      map[entity.OrderKind][]entity.OrderLine{},
		users:      map[int64]entity.User{},
		categories: map[int64]entity.Category{},
		suppliers:  map[int64]entity.Supplier{},
		customers:  map[int64]entity.Customer{},
	}
}

func (s *state) next(table string) int64 {
	s.seqs[table]++
	return s.seqs[table]
}

func (s *state) clone() *state {
	c := &state{
		seqs:       cloneMap(s.seqs),
		products:   cloneMap(s.products),
		orders:     make(map[entity.OrderKind]map[int64]entity.Order, len(s.orders)),
		lines:      make(map[entity.OrderKind][]entity.OrderLine, len(s.lines)),
		movements:  append([]entity.StockMovement(nil), s.movements...),
		users:      cloneMap(s.users),
		categories: cloneMap(s.categories),
		suppliers:  cloneMap(s.suppliers),
		customers:  cloneMap(s.customers),
		expenses:   append([]entity.Expense(nil), s.expenses...),
	}
	for k, m := range s.orders {
		c.orders[k] = cloneMap(m)
	}
	for k, l := range s.lines {
		c.lines[k] = append([]entity.OrderLine(nil), l...)
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Store es la base en memoria.
type Store struct {
	mu     sync.Mutex
	st     *state
	now    func() time.Time
	faults map[string]*fault
}

type fault struct {
	remaining int
	err       error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: newState(), now: time.Now, faults: map[string]*fault{}}
}

// SetClock fija el reloj usado para created_at (tests de series por día).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn hace que la llamada número call (1-based) a op devuelva err, una sola vez.
// Operaciones: "products.update_stock", "orders.create", "orders.create_line", "movements.append".
func (s *Store) FailOn(op string, call int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = &fault{remaining: call, err: err}
}

// checkFault se llama con s.mu tomado.
func (s *Store) checkFault(op string) error {
	f, ok := s.faults[op]
	if !ok {
		return nil
	}
	f.remaining--
	if f.remaining == 0 {
		delete(s.faults, op)
		return f.err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memstore: %w", err)
	}
	work := s.st.clone()
	a := txAccess{store: s, st: work}
	if err := fn(ctx, inventory.TxRepos{
		Products:  &ProductRepo{db: a},
		Orders:    &OrderRepo{db: a},
		Movements: &MovementRepo{db: a},
	}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// accessor abstrae si el repositorio trabaja dentro de una tx (sin bloqueo propio)
// o en modo autocommit (toma el mutex en cada llamada).
type accessor interface {
	do(fn func(st *state, now time.Time) error) error
	fault(op string) error
}

type txAccess struct {
	store *Store
	st    *state
}

func (a txAccess) do(fn func(*state, time.Time) error) error { return fn(a.st, a.store.now()) }
func (a txAccess) fault(op string) error                     { return a.store.checkFault(op) }

type liveAccess struct{ store *Store }

func (a liveAccess) do(fn func(*state, time.Time) error) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.st, a.store.now())
}

func (a liveAccess) fault(op string) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return a.store.checkFault(op)
}

// Repositorios en modo autocommit (fuera de transacción).
func (s *Store) Products() *ProductRepo    { return &ProductRepo{db: liveAccess{s}} }
func (s *Store) Orders() *OrderRepo        { return &OrderRepo{db: liveAccess{s}} }
func (s *Store) Movements() *MovementRepo  { return &MovementRepo{db: liveAccess{s}} }
func (s *Store) Users() *UserRepo          { return &UserRepo{db: liveAccess{s}} }
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{db: liveAccess{s}} }
func (s *Store) Suppliers() *SupplierRepo  { return &SupplierRepo{db: liveAccess{s}} }
func (s *Store) Customers() *CustomerRepo  { return &CustomerRepo{db: liveAccess{s}} }
func (s *Store) Expenses() *ExpenseRepo    { return &ExpenseRepo{db: liveAccess{s}} }
func (s *Store) Dashboard() *DashboardRepo { return &DashboardRepo{db: liveAccess{s}} }

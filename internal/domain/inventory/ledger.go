package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// ChainBreak describe una fila del libro que no cuadra.
type ChainBreak struct {
	ProductID  int64
	MovementID int64
	Reason     string
}

func (b ChainBreak) String() string {
	return fmt.Sprintf("producto %d, movimiento %d: %s", b.ProductID, b.MovementID, b.Reason)
}

// ChainChecker verifica el libro fila por fila (en orden de creación) sin cargarlo entero.
// Reporta filas cuyo stock_after no corresponde a ApplyMovement(kind, stock_before, quantity)
// y saltos entre el stock_after de un movimiento y el stock_before del siguiente del mismo producto.
type ChainChecker struct {
	last   map[int64]int64
	breaks []ChainBreak
}

func NewChainChecker() *ChainChecker {
	return &ChainChecker{last: make(map[int64]int64)}
}

// Add incorpora el siguiente movimiento del libro.
func (c *ChainChecker) Add(m *entity.StockMovement) {
	after, err := ApplyMovement(m.Kind, m.StockBefore, m.Quantity)
	switch {
	case err != nil:
		c.breaks = append(c.breaks, ChainBreak{m.ProductID, m.ID, err.Error()})
	case after != m.StockAfter:
		c.breaks = append(c.breaks, ChainBreak{m.ProductID, m.ID,
			fmt.Sprintf("stock_after %d, se esperaba %d", m.StockAfter, after)})
	}
	if prev, ok := c.last[m.ProductID]; ok && prev != m.StockBefore {
		c.breaks = append(c.breaks, ChainBreak{m.ProductID, m.ID,
			fmt.Sprintf("stock_before %d no encadena con %d", m.StockBefore, prev)})
	}
	c.last[m.ProductID] = m.StockAfter
}

// Breaks devuelve las discontinuidades encontradas hasta ahora.
func (c *ChainChecker) Breaks() []ChainBreak { return c.breaks }

// LastStock devuelve el último stock_after visto por producto.
func (c *ChainChecker) LastStock() map[int64]int64 { return c.last }

// VerifyChain revisa una lista de movimientos ordenada por creación.
func VerifyChain(movements []*entity.StockMovement) []ChainBreak {
	c := NewChainChecker()
	for _, m := range movements {
		c.Add(m)
	}
	return c.Breaks()
}

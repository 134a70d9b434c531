package inventory

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Movements repository.StockMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. La conexión se devuelve al pool en
// cualquier caso. Una implementación puede reintentar fn completa ante deadlocks, por lo que
// fn no debe tener efectos fuera de la transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

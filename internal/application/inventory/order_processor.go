package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderProcessor registra y anula compras y ventas de forma transaccional.
// Un único algoritmo sirve a ambos tipos; la diferencia la pone entity.OrderKind.
type OrderProcessor struct {
	txRunner  TxRunner
	publisher ports.EventPublisher
	cache     ports.SummaryCache
	log       *logger.Logger
}

// NewOrderProcessor construye el procesador. publisher y cache pueden ser nil.
func NewOrderProcessor(txRunner TxRunner, publisher ports.EventPublisher, cache ports.SummaryCache, log *logger.Logger) *OrderProcessor {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &OrderProcessor{txRunner: txRunner, publisher: publisher, cache: cache, log: log.Named("orders")}
}

// ProcessOrderInput datos de una compra o venta.
// CounterpartyID es el proveedor (obligatorio en compras) o el cliente (opcional en ventas).
type ProcessOrderInput struct {
	Kind           entity.OrderKind
	CounterpartyID *int64
	Lines          []inventory.LineInput
	UserID         int64
}

// ProcessOrderResult la orden confirmada con sus líneas y movimientos.
type ProcessOrderResult struct {
	Order     *entity.Order
	Lines     []*entity.OrderLine
	Movements []*entity.StockMovement
	Total     decimal.Decimal
}

// ProcessOrder valida y registra la orden en una sola transacción:
// cabecera, y por cada línea en el orden recibido: lectura bloqueante del producto,
// validación contra esa lectura, inserción de la línea, nuevo stock y fila del libro.
// Cualquier falla revierte todo; los errores por línea llegan envueltos en *domain.LineError.
func (p *OrderProcessor) ProcessOrder(ctx context.Context, in ProcessOrderInput) (*ProcessOrderResult, error) {
	if !in.Kind.Valid() {
		return nil, domain.ErrInvalidOrderKind
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if in.CounterpartyID != nil && *in.CounterpartyID <= 0 {
		in.CounterpartyID = nil // venta sin cliente
	}
	if in.Kind == entity.OrderPurchase && in.CounterpartyID == nil {
		return nil, domain.ErrCounterpartyMissing
	}

	total := decimal.Zero
	for _, l := range in.Lines {
		total = total.Add(l.Quantity.Mul(l.UnitAmount))
	}

	var result *ProcessOrderResult
	err := p.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		order := &entity.Order{
			Kind:           in.Kind,
			CounterpartyID: in.CounterpartyID,
			UserID:         in.UserID,
			Total:          total,
			Status:         entity.OrderStatusRegistered,
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}

		res := &ProcessOrderResult{
			Order:     order,
			Lines:     make([]*entity.OrderLine, 0, len(in.Lines)),
			Movements: make([]*entity.StockMovement, 0, len(in.Lines)),
			Total:     total,
		}
		for i, l := range in.Lines {
			line, mov, err := p.processLine(ctx, repos, order, l)
			if err != nil {
				if isLineFailure(err) {
					return &domain.LineError{Index: i + 1, ProductID: l.ProductID, Err: err}
				}
				return err
			}
			res.Lines = append(res.Lines, line)
			res.Movements = append(res.Movements, mov)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Str("kind", string(in.Kind)).
		Int64("order_id", result.Order.ID).
		Int("lines", len(result.Lines)).
		Str("total", total.StringFixed(2)).
		Int64("user_id", in.UserID).
		Msg("orden registrada")
	p.afterCommit(ctx, ports.OrderRegisteredKey(in.Kind), orderEvent(result.Order, len(result.Lines)))
	return result, nil
}

func (p *OrderProcessor) processLine(ctx context.Context, repos TxRepos, order *entity.Order, l inventory.LineInput) (*entity.OrderLine, *entity.StockMovement, error) {
	qty, err := inventory.ValidateLineShape(l)
	if err != nil {
		return nil, nil, err
	}
	product, err := repos.Products.GetForUpdate(ctx, l.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("leer producto %d: %w", l.ProductID, err)
	}
	if err := inventory.ValidateLineAgainstProduct(order.Kind, product, qty); err != nil {
		return nil, nil, err
	}

	line := &entity.OrderLine{
		OrderID:    order.ID,
		ProductID:  product.ID,
		Quantity:   qty,
		UnitAmount: l.UnitAmount,
		Subtotal:   decimal.NewFromInt(qty).Mul(l.UnitAmount),
	}
	if err := repos.Orders.CreateLine(ctx, order.Kind, line); err != nil {
		return nil, nil, err
	}

	orderID := order.ID
	mov, err := applyToLedger(ctx, repos, product, ledgerEntry{
		Kind:          order.Kind.MovementKind(),
		Quantity:      qty,
		UserID:        order.UserID,
		ReferenceType: order.Kind.Reference(),
		ReferenceID:   &orderID,
	})
	if err != nil {
		return nil, nil, err
	}
	return line, mov, nil
}

// afterCommit publica el evento e invalida la caché del tablero. Nunca falla la operación.
func (p *OrderProcessor) afterCommit(ctx context.Context, key string, payload any) {
	if err := p.publisher.Publish(ctx, key, payload); err != nil {
		p.log.Warn().Err(err).Str("event", key).Msg("no se pudo publicar el evento")
	}
	if err := p.cache.Invalidate(ctx); err != nil {
		p.log.Warn().Err(err).Msg("no se pudo invalidar la caché del tablero")
	}
}

func orderEvent(o *entity.Order, lines int) ports.OrderEvent {
	return ports.OrderEvent{
		OrderID:   o.ID,
		Kind:      string(o.Kind),
		Status:    o.Status,
		Total:     o.Total,
		Lines:     lines,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
	}
}

// isLineFailure distingue los rechazos de negocio atribuibles a una línea de los errores de infraestructura.
func isLineFailure(err error) bool {
	for _, target := range []error{
		domain.ErrMissingProduct,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidAmount,
		domain.ErrProductNotFound,
		domain.ErrProductInactive,
		domain.ErrInsufficientStock,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

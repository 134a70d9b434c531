package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// MovementRecorder registra movimientos manuales (entradas, salidas y ajustes sin orden asociada)
// con el mismo patrón de bloqueo + ApplyMovement + libro que las órdenes.
type MovementRecorder struct {
	txRunner  TxRunner
	publisher ports.EventPublisher
	cache     ports.SummaryCache
	log       *logger.Logger
}

// NewMovementRecorder construye el caso de uso. publisher y cache pueden ser nil.
func NewMovementRecorder(txRunner TxRunner, publisher ports.EventPublisher, cache ports.SummaryCache, log *logger.Logger) *MovementRecorder {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &MovementRecorder{txRunner: txRunner, publisher: publisher, cache: cache, log: log.Named("movements")}
}

// RecordMovementInput entrada del movimiento manual.
type RecordMovementInput struct {
	ProductID int64
	Kind      entity.MovementKind
	Quantity  decimal.Decimal
	UserID    int64
	Note      string
}

// RecordMovementResult el movimiento registrado y el producto con su stock nuevo.
type RecordMovementResult struct {
	Movement *entity.StockMovement
	Product  *entity.Product
}

// RecordMovement aplica el movimiento sobre la fila bloqueada del producto.
// En ajustes la cantidad es el stock final (cero permitido), no una diferencia.
func (r *MovementRecorder) RecordMovement(ctx context.Context, in RecordMovementInput) (*RecordMovementResult, error) {
	if !in.Kind.Valid() {
		return nil, domain.ErrInvalidMovementKind
	}
	if in.ProductID <= 0 {
		return nil, domain.ErrMissingProduct
	}
	qty, err := inventory.ParseQuantity(in.Quantity, in.Kind == entity.MovementAdjustment)
	if err != nil {
		return nil, err
	}

	var result *RecordMovementResult
	err = r.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return fmt.Errorf("leer producto %d: %w", in.ProductID, err)
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if !product.Active {
			return domain.ErrProductInactive
		}
		mov, err := applyToLedger(ctx, repos, product, ledgerEntry{
			Kind:          in.Kind,
			Quantity:      qty,
			UserID:        in.UserID,
			ReferenceType: entity.RefManual,
			Note:          strings.TrimSpace(in.Note),
		})
		if err != nil {
			return err
		}
		result = &RecordMovementResult{Movement: mov, Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m := result.Movement
	r.log.Info().
		Int64("product_id", m.ProductID).
		Str("kind", string(m.Kind)).
		Int64("quantity", m.Quantity).
		Int64("stock_before", m.StockBefore).
		Int64("stock_after", m.StockAfter).
		Msg("movimiento manual registrado")
	if err := r.publisher.Publish(ctx, ports.EventMovementRecorded, movementEvent(m)); err != nil {
		r.log.Warn().Err(err).Msg("no se pudo publicar el movimiento")
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		r.log.Warn().Err(err).Msg("no se pudo invalidar la caché del tablero")
	}
	return result, nil
}

// SeedStock registra el stock inicial de un producto recién creado como ajuste, dentro de la
// transacción del alta. Con initial == 0 no hace nada.
func SeedStock(ctx context.Context, repos TxRepos, product *entity.Product, initial, userID int64) (*entity.StockMovement, error) {
	if initial < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if initial == 0 {
		return nil, nil
	}
	return applyToLedger(ctx, repos, product, ledgerEntry{
		Kind:          entity.MovementAdjustment,
		Quantity:      initial,
		UserID:        userID,
		ReferenceType: entity.RefInitialStock,
		ReferenceID:   &product.ID,
	})
}

func movementEvent(m *entity.StockMovement) ports.MovementEvent {
	return ports.MovementEvent{
		MovementID:  m.ID,
		ProductID:   m.ProductID,
		Kind:        string(m.Kind),
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		UserID:      m.UserID,
	}
}

package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

const (
	movementPageSize = 200

	// MaxReportMovements tope de filas del kardex impreso; el resto queda indicado en el documento.
	MaxReportMovements = 5000
)

// MovementFilter filtros del reporte de movimientos. Todos opcionales.
type MovementFilter struct {
	ProductID *int64
	From, To  *time.Time
}

// MovementDocument kardex listo para renderizar, en orden cronológico.
type MovementDocument struct {
	Product   *entity.Product // nil: todos los productos
	From, To  *time.Time
	Movements []*entity.StockMovementView
	Truncated bool
}

// MovementPDFGenerator puerto de salida para el kardex en PDF.
type MovementPDFGenerator interface {
	GenerateMovementsPDF(ctx context.Context, doc MovementDocument) ([]byte, error)
}

// MovementLister lectura paginada del libro (más recientes primero).
type MovementLister interface {
	ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovementView, error)
}

// MovementReportUseCase arma el PDF del historial de movimientos.
type MovementReportUseCase struct {
	movements MovementLister
	products  repository.ProductRepository
	generator MovementPDFGenerator
}

func NewMovementReportUseCase(movements MovementLister, products repository.ProductRepository, generator MovementPDFGenerator) *MovementReportUseCase {
	return &MovementReportUseCase{movements: movements, products: products, generator: generator}
}

// DownloadMovementsPDF devuelve el kardex filtrado y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrInvalidInput     si from es posterior a to.
//   - domain.ErrProductNotFound  si se filtra por un producto que no existe.
func (uc *MovementReportUseCase) DownloadMovementsPDF(ctx context.Context, f MovementFilter) ([]byte, string, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, "", fmt.Errorf("rango de fechas invertido: %w", domain.ErrInvalidInput)
	}
	doc := MovementDocument{From: f.From, To: f.To}
	filename := "movimientos.pdf"
	if f.ProductID != nil {
		p, err := uc.products.GetByID(ctx, *f.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("reporte: obtener producto: %w", err)
		}
		if p == nil {
			return nil, "", domain.ErrProductNotFound
		}
		doc.Product = p
		filename = fmt.Sprintf("movimientos_producto_%d.pdf", p.ID)
	}

	filter := repository.MovementFilter{ProductID: f.ProductID, From: f.From, To: f.To}
	for offset := 0; ; offset += movementPageSize {
		filter.Page = repository.Page{Limit: movementPageSize, Offset: offset}
		page, err := uc.movements.ListMovements(ctx, filter)
		if err != nil {
			return nil, "", fmt.Errorf("reporte: listar movimientos: %w", err)
		}
		doc.Movements = append(doc.Movements, page...)
		if len(doc.Movements) >= MaxReportMovements {
			doc.Truncated = len(doc.Movements) > MaxReportMovements || len(page) == movementPageSize
			doc.Movements = doc.Movements[:MaxReportMovements]
			break
		}
		if len(page) < movementPageSize {
			break
		}
	}
	// El libro llega de más reciente a más antiguo; el kardex se lee hacia adelante.
	slices.Reverse(doc.Movements)

	pdf, err := uc.generator.GenerateMovementsPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdf, filename, nil
}

// Package report genera documentos imprimibles: comprobantes de compras y ventas y el kardex
// (historial de movimientos de inventario).
package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// OrderDocument datos ya resueltos que necesita el generador: cabecera con nombres y líneas
// con nombre de producto, en el orden en que se registraron.
type OrderDocument struct {
	Header *entity.OrderSummary
	Lines  []*entity.OrderLineView
}

// OrderPDFGenerator puerto de salida para renderizar el PDF.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, doc OrderDocument) ([]byte, error)
}

// OrderReportUseCase arma el PDF de una compra o una venta.
type OrderReportUseCase struct {
	orders    repository.OrderRepository
	generator OrderPDFGenerator
}

// NewOrderReportUseCase construye el caso de uso.
func NewOrderReportUseCase(orders repository.OrderRepository, generator OrderPDFGenerator) *OrderReportUseCase {
	return &OrderReportUseCase{orders: orders, generator: generator}
}

// DownloadOrderPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
// Las órdenes anuladas también se imprimen; el documento lo indica.
//
// Retorna:
//   - domain.ErrInvalidOrderKind si kind no es compra ni venta.
//   - domain.ErrOrderNotFound    si la orden no existe.
func (uc *OrderReportUseCase) DownloadOrderPDF(ctx context.Context, kind entity.OrderKind, id int64) ([]byte, string, error) {
	if !kind.Valid() {
		return nil, "", domain.ErrInvalidOrderKind
	}
	header, err := uc.orders.GetSummary(ctx, kind, id)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener orden: %w", err)
	}
	if header == nil {
		return nil, "", domain.ErrOrderNotFound
	}
	lines, err := uc.orders.GetLineViews(ctx, kind, id)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener líneas: %w", err)
	}

	pdf, err := uc.generator.GenerateOrderPDF(ctx, OrderDocument{Header: header, Lines: lines})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("%s_%d.pdf", fileLabel(kind), id), nil
}

func fileLabel(kind entity.OrderKind) string {
	if kind == entity.OrderPurchase {
		return "compra"
	}
	return "venta"
}

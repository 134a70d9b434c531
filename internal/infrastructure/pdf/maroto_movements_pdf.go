package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-pos/internal/application/report"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

var _ report.MovementPDFGenerator = (*MarotoPDFGenerator)(nil)

// Kardex en A4 horizontal. El encabezado de la tabla se repite en cada página:
//
//	Fecha | Producto | Tipo | Cant. | Antes | Después | Referencia | Usuario

type kardexColumn struct {
	label string
	size  int
	align align.Type
}

var kardexColumns = []kardexColumn{
	{"Fecha", 2, align.Left},
	{"Producto", 3, align.Left},
	{"Tipo", 1, align.Center},
	{"Cant.", 1, align.Right},
	{"Antes", 1, align.Right},
	{"Después", 1, align.Right},
	{"Referencia", 2, align.Left},
	{"Usuario", 1, align.Left},
}

// GenerateMovementsPDF genera el kardex y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMovementsPDF(_ context.Context, doc report.MovementDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithPageNumber(props.PageNumber{Pattern: "Página {current} de {total}", Place: props.RightBottom, Size: 7, Color: colorGray}).
		WithTitle("KARDEX", true).
		WithAuthor(g.business, true).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterHeader(
		g.kardexTitleRow(doc),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
		kardexHeaderRow(),
	); err != nil {
		return nil, fmt.Errorf("pdf: encabezado del kardex: %w", err)
	}

	if len(doc.Movements) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(text.New("Sin movimientos en el periodo.", props.Text{
			Size: 9, Align: align.Center, Top: 4, Color: colorGray,
		}))))
	}
	for _, mv := range doc.Movements {
		m.AddRows(kardexDetailRow(mv))
	}
	if doc.Truncated {
		m.AddRows(row.New(10).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Listado recortado a %d movimientos: acotar el rango de fechas.", report.MaxReportMovements),
			props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorDanger, Top: 3},
		))))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return out.GetBytes(), nil
}

func (g *MarotoPDFGenerator) kardexTitleRow(doc report.MovementDocument) core.Row {
	scope := "Todos los productos"
	if doc.Product != nil {
		scope = fmt.Sprintf("%s (stock actual: %d)", doc.Product.Name, doc.Product.Stock)
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New(g.business, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("KARDEX DE INVENTARIO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 8}),
		),
		col.New(6).Add(
			text.New(scope, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1}),
			text.New("Periodo: "+period(doc.From, doc.To), props.Text{Size: 8, Align: align.Right, Top: 7, Color: colorGray}),
			text.New(fmt.Sprintf("Movimientos: %d", len(doc.Movements)), props.Text{Size: 8, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func kardexHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(kardexColumns))
	for _, c := range kardexColumns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func kardexDetailRow(mv *entity.StockMovementView) core.Row {
	values := []string{
		mv.CreatedAt.Format("02/01/2006 15:04"),
		nonEmpty(mv.ProductName, fmt.Sprintf("Producto %d", mv.ProductID)),
		kindLabel(mv.Kind),
		strconv.FormatInt(mv.Quantity, 10),
		strconv.FormatInt(mv.StockBefore, 10),
		strconv.FormatInt(mv.StockAfter, 10),
		referenceLabel(mv.ReferenceType, mv.ReferenceID),
		nonEmpty(mv.UserName, strconv.FormatInt(mv.UserID, 10)),
	}
	cols := make([]core.Col, 0, len(kardexColumns))
	for i, c := range kardexColumns {
		cols = append(cols, col.New(c.size).Add(text.New(values[i], props.Text{
			Size: 7, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func kindLabel(k entity.MovementKind) string {
	switch k {
	case entity.MovementEntry:
		return "Entrada"
	case entity.MovementExit:
		return "Salida"
	case entity.MovementAdjustment:
		return "Ajuste"
	}
	return string(k)
}

var referenceLabels = map[string]string{
	entity.RefPurchase:     "Compra",
	entity.RefSale:         "Venta",
	entity.RefPurchaseVoid: "Anulación compra",
	entity.RefSaleVoid:     "Anulación venta",
	entity.RefManual:       "Manual",
	entity.RefInitialStock: "Stock inicial",
}

func referenceLabel(refType string, refID *int64) string {
	label := nonEmpty(referenceLabels[refType], refType)
	if refID != nil {
		return fmt.Sprintf("%s N° %d", label, *refID)
	}
	return label
}

func period(from, to *time.Time) string {
	const layout = "02/01/2006"
	switch {
	case from != nil && to != nil:
		return from.Format(layout) + " a " + to.Format(layout)
	case from != nil:
		return "desde " + from.Format(layout)
	case to != nil:
		return "hasta " + to.Format(layout)
	}
	return "completo"
}

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// productRow fila válida del CSV con su número de línea en el archivo.
type productRow struct {
	Line    int
	Request dto.CreateProductRequest
}

// rowError fila rechazada; el resto del archivo se sigue procesando.
type rowError struct {
	Line int
	Err  error
}

func (e rowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// Columnas reconocidas; name y price son obligatorias.
const (
	colName        = "name"
	colPrice       = "price"
	colStock       = "stock"
	colCategoryID  = "category_id"
	colDescription = "description"
)

// parseProductCSV lee el archivo de productos. Con latin1 decodifica ISO-8859-1
// (exportaciones de Excel en español). sep es ',' o ';'.
func parseProductCSV(r io.Reader, latin1 bool, sep rune) ([]productRow, []rowError, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	for _, required := range []string{colName, colPrice} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var rows []productRow
	var rejected []rowError
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rejected = append(rejected, rowError{Line: line, Err: err})
			continue
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		req, err := productFromFields(field)
		if err != nil {
			rejected = append(rejected, rowError{Line: line, Err: err})
			continue
		}
		rows = append(rows, productRow{Line: line, Request: req})
	}
	return rows, rejected, nil
}

func productFromFields(field func(string) string) (dto.CreateProductRequest, error) {
	var req dto.CreateProductRequest
	req.Name = field(colName)
	if req.Name == "" {
		return req, errors.New("name vacío")
	}
	req.Description = field(colDescription)

	price, err := parseDecimal(field(colPrice))
	if err != nil {
		return req, fmt.Errorf("price: %w", err)
	}
	req.Price = price

	if raw := field(colStock); raw != "" {
		stock, err := parseDecimal(raw)
		if err != nil {
			return req, fmt.Errorf("stock: %w", err)
		}
		req.InitialStock = stock
	}
	if raw := field(colCategoryID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return req, fmt.Errorf("category_id inválido: %q", raw)
		}
		req.CategoryID = &id
	}
	return req, nil
}

// parseDecimal acepta coma decimal ("2500,50") si el valor no trae punto.
func parseDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, errors.New("vacío")
	}
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return decimal.NewFromString(raw)
}

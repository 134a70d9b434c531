package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseProductCSV_FilasValidasYRechazadas(t *testing.T) {
	in := strings.Join([]string{
		"Name,Price,Stock,category_id",
		"Arroz 1kg,2500,10,3",
		",1000,1,",
		"Panela,abc,2,",
		"Sal,900,,",
	}, "\n")

	rows, rejected, err := parseProductCSV(strings.NewReader(in), false, ',')
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Arroz 1kg", rows[0].Request.Name)
	assert.Equal(t, "2500", rows[0].Request.Price.String())
	assert.Equal(t, "10", rows[0].Request.InitialStock.String())
	require.NotNil(t, rows[0].Request.CategoryID)
	assert.Equal(t, int64(3), *rows[0].Request.CategoryID)

	assert.Equal(t, "Sal", rows[1].Request.Name)
	assert.True(t, rows[1].Request.InitialStock.IsZero())
	assert.Nil(t, rows[1].Request.CategoryID)

	require.Len(t, rejected, 2)
	assert.Equal(t, 3, rejected[0].Line)
	assert.Equal(t, 4, rejected[1].Line)
	assert.Contains(t, rejected[1].Error(), "price")
}

// Exportación típica de Excel en español: ISO-8859-1, punto y coma y coma decimal.
func TestParseProductCSV_Latin1ConComaDecimal(t *testing.T) {
	utf8 := "name;price;stock;description\nCafé molido;12500,50;4;Año nuevo\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	rows, rejected, err := parseProductCSV(bytes.NewReader([]byte(encoded)), true, ';')
	require.NoError(t, err)
	require.Empty(t, rejected)
	require.Len(t, rows, 1)

	assert.Equal(t, "Café molido", rows[0].Request.Name)
	assert.Equal(t, "Año nuevo", rows[0].Request.Description)
	assert.Equal(t, "12500.5", rows[0].Request.Price.String())
}

func TestParseProductCSV_SinColumnaPrice(t *testing.T) {
	_, _, err := parseProductCSV(strings.NewReader("name,stock\nArroz,1\n"), false, ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}

package excel

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pricelens/internal/errors"
)

func buildXLSX(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadList_CSV(t *testing.T) {
	csvData := "Clave,Descripción,Precio\n" +
		"X1,Filtro de aceite,$120.00\n" +
		"X2,Bujía,\"1,299.50\"\n" +
		"X3,Sin precio,\n"

	list, err := NewDataReader().ReadList(context.Background(), "A", strings.NewReader(csvData), "lista.csv")
	require.NoError(t, err)
	require.Equal(t, "A", list.Name)
	require.Len(t, list.Rows, 3)

	require.Equal(t, "X1", list.Rows[0].Key)
	require.Equal(t, "Filtro de aceite", list.Rows[0].Description)
	require.Equal(t, 120.0, list.Rows[0].Price)
	require.Equal(t, 1299.50, list.Rows[1].Price)
	require.Equal(t, 0.0, list.Rows[2].Price)
}

func TestReadList_CSVWithBOM(t *testing.T) {
	csvData := "\uFEFFClave,Descripción,Precio\nX1,Filtro,100\n"

	list, err := NewDataReader().ReadList(context.Background(), "A", strings.NewReader(csvData), "lista.csv")
	require.NoError(t, err)
	require.Len(t, list.Rows, 1)
	require.Equal(t, "X1", list.Rows[0].Key)
}

func TestReadList_ColumnAliases(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
	}{
		{"codigo nombre costo", "Codigo,Nombre,Costo\nX1,Filtro,100\n"},
		{"sku lowercase", "sku,descripcion,precio\nX1,Filtro,100\n"},
		{"uppercase", "CLAVE,Descripcion,PRECIO\nX1,Filtro,100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := NewDataReader().ReadList(context.Background(), "A", strings.NewReader(tt.csvData), "lista.csv")
			require.NoError(t, err)
			require.Len(t, list.Rows, 1)
			require.Equal(t, "X1", list.Rows[0].Key)
			require.Equal(t, "Filtro", list.Rows[0].Description)
			require.Equal(t, 100.0, list.Rows[0].Price)
		})
	}
}

func TestReadList_SkipsBlankRows(t *testing.T) {
	csvData := "Clave,Descripción,Precio\nX1,Filtro,100\n,,\nX2,Bujía,50\n"

	list, err := NewDataReader().ReadList(context.Background(), "A", strings.NewReader(csvData), "lista.csv")
	require.NoError(t, err)
	require.Len(t, list.Rows, 2)
	require.Equal(t, "X2", list.Rows[1].Key)
}

func TestReadList_XLSX(t *testing.T) {
	xlsx := buildXLSX(t, [][]interface{}{
		{"Clave", "Descripción", "Precio"},
		{"X1", "Filtro de aceite", 120.0},
		{"X2", "Bujía", 50.5},
	})

	list, err := NewDataReader().ReadList(context.Background(), "B", xlsx, "lista.xlsx")
	require.NoError(t, err)
	require.Len(t, list.Rows, 2)
	require.Equal(t, "X1", list.Rows[0].Key)
	require.Equal(t, 120.0, list.Rows[0].Price)
	require.Equal(t, 50.5, list.Rows[1].Price)
}

func TestReadList_XLSXHeaderBelowPreamble(t *testing.T) {
	xlsx := buildXLSX(t, [][]interface{}{
		{"Lista de precios 2026"},
		{},
		{"Clave", "Descripción", "Precio"},
		{"X1", "Filtro", 100.0},
	})

	list, err := NewDataReader().ReadList(context.Background(), "A", xlsx, "lista.xlsx")
	require.NoError(t, err)
	require.Len(t, list.Rows, 1)
	require.Equal(t, "X1", list.Rows[0].Key)
}

func TestReadList_Errors(t *testing.T) {
	tests := []struct {
		name     string
		csvData  string
		filename string
		wantCode string
	}{
		{
			name:     "missing key column",
			csvData:  "Articulo,Descripción,Precio\nX1,Filtro,100\n",
			filename: "lista.csv",
			wantCode: errors.CodeMissingColumn,
		},
		{
			name:     "empty key cell",
			csvData:  "Clave,Descripción,Precio\n,Filtro,100\n",
			filename: "lista.csv",
			wantCode: errors.CodeInvalidRow,
		},
		{
			name:     "non numeric price",
			csvData:  "Clave,Descripción,Precio\nX1,Filtro,abc\n",
			filename: "lista.csv",
			wantCode: errors.CodeInvalidRow,
		},
		{
			name:     "negative price",
			csvData:  "Clave,Descripción,Precio\nX1,Filtro,-10\n",
			filename: "lista.csv",
			wantCode: errors.CodeInvalidRow,
		},
		{
			name:     "legacy xls",
			csvData:  "irrelevant",
			filename: "lista.xls",
			wantCode: errors.CodeUnsupportedFile,
		},
		{
			name:     "unknown extension",
			csvData:  "irrelevant",
			filename: "lista.txt",
			wantCode: errors.CodeUnsupportedFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataReader().ReadList(context.Background(), "A", strings.NewReader(tt.csvData), tt.filename)
			require.Error(t, err)
			require.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}

func TestReadList_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader().ReadList(ctx, "A", strings.NewReader("Clave,Precio\nX1,1\n"), "lista.csv")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"120", 120, false},
		{"$120.00", 120, false},
		{"1,299.50", 1299.50, false},
		{"  $ 99.999 ", 100, false}, // rounded to 2 decimals
		{"", 0, false},
		{"MXN 45.5", 45.5, false},
		{"abc", 0, true},
		{"-10", 0, true},
		{"$", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := cleanPrice(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

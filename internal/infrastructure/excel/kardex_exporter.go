// Package excel genera el libro Excel del kardex con excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	appexport "github.com/cafearoma/backoffice-api/internal/application/export"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
)

var _ appexport.KardexExcelExporter = (*KardexExporter)(nil)

const sheetName = "Kardex"

// KardexExporter implementa export.KardexExcelExporter usando excelize.
type KardexExporter struct{}

func NewKardexExporter() *KardexExporter { return &KardexExporter{} }

// Export arma un libro con la ficha del producto, el stock actual y una fila
// por movimiento (más reciente primero, mismo orden del historial).
func (e *KardexExporter) Export(
	product *entity.Product,
	stock *entity.ProductStock,
	movements []*entity.InventoryMovement,
) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: crear estilo: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: crear estilo: %w", err)
	}

	// Ficha del producto
	f.SetCellValue(sheetName, "A1", "Kardex de inventario")
	f.SetCellStyle(sheetName, "A1", "A1", boldStyle)
	f.SetCellValue(sheetName, "A2", "Producto")
	f.SetCellValue(sheetName, "B2", fmt.Sprintf("%s (%s)", product.Name, product.SKU))
	f.SetCellValue(sheetName, "A3", "Presentación")
	f.SetCellValue(sheetName, "B3", dto.FormatGrams(product.PresentationGrams))
	f.SetCellValue(sheetName, "A4", "Stock actual")
	f.SetCellValue(sheetName, "B4", dto.FormatGrams(stock.TotalGramsAvailable))

	// Cabecera de la tabla de movimientos
	headers := []string{"Fecha", "Tipo", "Cantidad", "Stock anterior", "Stock resultante", "Motivo", "Lote", "Registrado por"}
	const tableRow = 6
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, tableRow)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de cabecera: %w", err)
		}
		f.SetCellValue(sheetName, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, tableRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), tableRow)
	f.SetCellStyle(sheetName, first, last, headerStyle)

	for i, mov := range movements {
		rowNum := tableRow + 1 + i
		values := []any{
			mov.CreatedAt.Format("02/01/2006 15:04"),
			mov.Type.Label(),
			dto.FormatGrams(mov.QuantityGrams),
			dto.FormatGrams(mov.StockBefore),
			dto.FormatGrams(mov.StockAfter),
			mov.Reason,
			mov.BatchNumber,
			mov.PerformerEmail,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("excel: celda de movimiento: %w", err)
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	// Anchos legibles para fecha, motivo y correo
	f.SetColWidth(sheetName, "A", "A", 18)
	f.SetColWidth(sheetName, "B", "E", 15)
	f.SetColWidth(sheetName, "F", "F", 32)
	f.SetColWidth(sheetName, "G", "H", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

package taxreporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

var (
	header607 = []string{"RNC/Cédula", "Tipo ID", "NCF", "NCF Modificado", "Fecha", "Monto Facturado", "ITBIS Facturado"}
	header606 = []string{"RNC Suplidor", "Tipo ID", "Tipo de Gasto", "NCF", "Fecha", "Monto Facturado", "ITBIS Pagado"}
)

// Excel607 genera el libro de Excel del formato 607 para el contador
func Excel607(report *domain.DGIIReport, rows []*domain.Report607Row) ([]byte, error) {
	cells := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []any{
			row.RNC, row.IDType, row.NCF, row.NCFModified, row.Date,
			row.InvoicedAmount, row.ITBIS,
		})
	}
	return buildWorkbook("607", report, header607, cells)
}

// Excel606 genera el libro de Excel del formato 606 para el contador
func Excel606(report *domain.DGIIReport, rows []*domain.Report606Row) ([]byte, error) {
	cells := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []any{
			row.SupplierRNC, row.IDType, row.ExpenseType, row.NCF, row.Date,
			row.InvoicedAmount, row.ITBIS,
		})
	}
	return buildWorkbook("606", report, header606, cells)
}

func buildWorkbook(sheet string, report *domain.DGIIReport, header []string, rows [][]any) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("error al nombrar la hoja: %w", err)
	}

	if err := file.SetCellValue(sheet, "A1", fmt.Sprintf("Formato %s - RNC %s - Período %s", sheet, report.TaxpayerRNC, report.Period)); err != nil {
		return nil, fmt.Errorf("error al escribir la cabecera: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, fmt.Errorf("error al calcular la celda: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("error al escribir la cabecera: %w", err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+3)
			if err != nil {
				return nil, fmt.Errorf("error al calcular la celda: %w", err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("error al escribir la fila %d: %w", i+1, err)
			}
		}
	}

	totalsRow := len(rows) + 3
	totalLabelCell, _ := excelize.CoordinatesToCellName(len(header)-2, totalsRow)
	amountCell, _ := excelize.CoordinatesToCellName(len(header)-1, totalsRow)
	itbisCell, _ := excelize.CoordinatesToCellName(len(header), totalsRow)
	if err := file.SetCellValue(sheet, totalLabelCell, "Totales"); err != nil {
		return nil, fmt.Errorf("error al escribir los totales: %w", err)
	}
	if err := file.SetCellValue(sheet, amountCell, report.TotalAmount); err != nil {
		return nil, fmt.Errorf("error al escribir los totales: %w", err)
	}
	if err := file.SetCellValue(sheet, itbisCell, report.TotalITBIS); err != nil {
		return nil, fmt.Errorf("error al escribir los totales: %w", err)
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error al serializar el libro: %w", err)
	}

	return buffer.Bytes(), nil
}

package taxreporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

const (
	// Tipos de identificación del comprador según el instructivo de la DGII
	idTypeRNC              = "1"
	idTypeCedula           = "2"
	idTypeConsumidor       = "3"
	rncLength              = 9
	cedulaLength           = 11
	dgiiDateLayout         = "20060102"
	expenseTypeCostOfSales = "09"
)

// Build607Rows construye las filas del formato 607 a partir de las ventas del
// período. Toda venta con NCF emitido se reporta, incluidas las anuladas, que
// van con montos en cero para que la secuencia quede completa.
func Build607Rows(sales []*domain.Sale) []*domain.Report607Row {
	rows := make([]*domain.Report607Row, 0, len(sales))
	for _, sale := range sales {
		if sale.NCF == "" {
			continue
		}

		row := &domain.Report607Row{
			NCF:    sale.NCF,
			IDType: idTypeConsumidor,
			Date:   sale.SoldAt.Format(dgiiDateLayout),
		}

		if sale.CustomerRNC != nil && *sale.CustomerRNC != "" {
			row.RNC = *sale.CustomerRNC
			row.IDType = idTypeFor(*sale.CustomerRNC)
		}

		if sale.Status == domain.SaleStatusVoided {
			// el NCF anulado se declara en la columna de comprobante
			// modificado para distinguir la anulación de una venta en cero
			row.NCFModified = sale.NCF
		} else {
			row.InvoicedAmount = sale.Subtotal
			row.ITBIS = sale.ITBISTotal
		}

		rows = append(rows, row)
	}
	return rows
}

// Format607Text serializa el reporte en el layout de texto de la DGII: un
// registro de cabecera y una fila por NCF, separados por pipes
func Format607Text(taxpayerRNC, period string, rows []*domain.Report607Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "607|%s|%s|%d\n", taxpayerRNC, period, len(rows))
	for _, row := range rows {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%.2f|%.2f\n",
			row.RNC,
			row.IDType,
			row.NCF,
			row.NCFModified,
			row.Date,
			row.InvoicedAmount,
			row.ITBIS,
		)
	}
	return b.String()
}

// idTypeFor clasifica la identificación por su longitud: 9 dígitos es RNC,
// 11 es cédula
func idTypeFor(id string) string {
	switch len(id) {
	case rncLength:
		return idTypeRNC
	case cedulaLength:
		return idTypeCedula
	default:
		return idTypeConsumidor
	}
}

// periodRange traduce un período AAAAMM al rango [inicio, fin) del mes
func periodRange(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("200601", period)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	return start, start.AddDate(0, 1, 0), nil
}

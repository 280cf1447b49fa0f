package taxreporting

import (
	"fmt"
	"strings"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

// Build606Rows construye las filas del formato 606 a partir de las compras
// recibidas en el período. Solo se reportan las recepciones con NCF del
// suplidor; el tipo de gasto es siempre 09 (costo de venta).
func Build606Rows(purchases []*domain.PurchaseOrder) []*domain.Report606Row {
	rows := make([]*domain.Report606Row, 0, len(purchases))
	for _, order := range purchases {
		if order.SupplierNCF == nil || *order.SupplierNCF == "" || order.ReceivedAt == nil {
			continue
		}

		rows = append(rows, &domain.Report606Row{
			SupplierRNC:    order.SupplierRNC,
			IDType:         idTypeFor(order.SupplierRNC),
			ExpenseType:    expenseTypeCostOfSales,
			NCF:            *order.SupplierNCF,
			Date:           order.ReceivedAt.Format(dgiiDateLayout),
			InvoicedAmount: order.Subtotal,
			ITBIS:          order.ITBISTotal,
		})
	}
	return rows
}

// Format606Text serializa el reporte en el layout de texto de la DGII
func Format606Text(taxpayerRNC, period string, rows []*domain.Report606Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "606|%s|%s|%d\n", taxpayerRNC, period, len(rows))
	for _, row := range rows {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%.2f|%.2f\n",
			row.SupplierRNC,
			row.IDType,
			row.ExpenseType,
			row.NCF,
			row.Date,
			row.InvoicedAmount,
			row.ITBIS,
		)
	}
	return b.String()
}

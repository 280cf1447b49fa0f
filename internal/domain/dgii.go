package domain

import "time"

// Report607Row representa una fila del formato 607 (ventas de bienes y servicios)
type Report607Row struct {
	RNC            string  `json:"rnc"`
	IDType         string  `json:"id_type"` // 1 = RNC, 2 = cédula, 3 = consumidor final
	NCF            string  `json:"ncf"`
	NCFModified    string  `json:"ncf_modified"`
	Date           string  `json:"date"` // AAAAMMDD
	InvoicedAmount float64 `json:"invoiced_amount"`
	ITBIS          float64 `json:"itbis"`
}

// Report606Row representa una fila del formato 606 (compras de bienes y servicios)
type Report606Row struct {
	SupplierRNC    string  `json:"supplier_rnc"`
	IDType         string  `json:"id_type"`
	ExpenseType    string  `json:"expense_type"` // 09 = compras y gastos que formarán parte del costo de venta
	NCF            string  `json:"ncf"`
	Date           string  `json:"date"` // AAAAMMDD
	InvoicedAmount float64 `json:"invoiced_amount"`
	ITBIS          float64 `json:"itbis"`
}

// DGIIReportKind identifica el formato del reporte
type DGIIReportKind string

const (
	ReportKind606 DGIIReportKind = "606"
	ReportKind607 DGIIReportKind = "607"
)

// DGIIReport representa un reporte 606 o 607 generado para un período
type DGIIReport struct {
	ID          int64          `json:"id"`
	Kind        DGIIReportKind `json:"kind"`
	Period      string         `json:"period"` // AAAAMM
	TaxpayerRNC string         `json:"taxpayer_rnc"`
	RowCount    int            `json:"row_count"`
	TotalAmount float64        `json:"total_amount"`
	TotalITBIS  float64        `json:"total_itbis"`
	Content     string         `json:"content"`
	GeneratedAt time.Time      `json:"generated_at"`
}

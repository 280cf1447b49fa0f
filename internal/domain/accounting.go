package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnbalancedEntry indica que los débitos y créditos de un asiento no cuadran
var ErrUnbalancedEntry = errors.New("asiento descuadrado")

// AccountKind representa la naturaleza de una cuenta contable
type AccountKind string

const (
	AccountAsset     AccountKind = "activo"
	AccountLiability AccountKind = "pasivo"
	AccountEquity    AccountKind = "capital"
	AccountIncome    AccountKind = "ingreso"
	AccountExpense   AccountKind = "gasto"
)

// Cuentas del catálogo mínimo que usan los asientos automáticos
const (
	AccountCodeCash          = "1101" // Caja
	AccountCodeReceivables   = "1103" // Cuentas por cobrar (fiado)
	AccountCodeInventory     = "1104" // Inventario de mercancías
	AccountCodePayables      = "2101" // Cuentas por pagar suplidores
	AccountCodeITBISPayable  = "2105" // ITBIS por pagar
	AccountCodeITBISAdvanced = "1105" // ITBIS adelantado en compras
	AccountCodeSales         = "4101" // Ventas
	AccountCodeCOGS          = "5101" // Costo de ventas
)

// Account representa una cuenta del catálogo contable
type Account struct {
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Kind      AccountKind `json:"kind"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

// JournalLine representa una línea de débito o crédito de un asiento
type JournalLine struct {
	AccountCode string  `json:"account_code"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
}

// JournalEntry representa un asiento del diario general
type JournalEntry struct {
	ID          int64          `json:"id"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
	Reference   string         `json:"reference"`
	Lines       []*JournalLine `json:"lines"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Validate verifica que el asiento esté cuadrado: total de débitos igual al
// total de créditos y al menos dos líneas
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return fmt.Errorf("un asiento requiere al menos dos líneas")
	}

	var debits, credits float64
	for _, line := range e.Lines {
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("los montos del asiento no pueden ser negativos")
		}
		if line.Debit > 0 && line.Credit > 0 {
			return fmt.Errorf("una línea no puede tener débito y crédito a la vez")
		}
		debits += line.Debit
		credits += line.Credit
	}

	const tolerance = 0.01
	if diff := debits - credits; diff > tolerance || diff < -tolerance {
		return fmt.Errorf("%w: débitos %.2f, créditos %.2f", ErrUnbalancedEntry, debits, credits)
	}

	return nil
}

// TrialBalanceRow representa una fila de la balanza de comprobación
type TrialBalanceRow struct {
	AccountCode string      `json:"account_code"`
	AccountName string      `json:"account_name"`
	Kind        AccountKind `json:"kind"`
	Debits      float64     `json:"debits"`
	Credits     float64     `json:"credits"`
	Balance     float64     `json:"balance"`
}

// TrialBalance representa la balanza de comprobación de un período
type TrialBalance struct {
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Rows         []*TrialBalanceRow `json:"rows"`
	TotalDebits  float64            `json:"total_debits"`
	TotalCredits float64            `json:"total_credits"`
}

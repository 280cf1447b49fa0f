package accounting

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

var (
	ErrUnknownAccount = errors.New("cuenta no registrada en el catálogo")
	ErrAccountInUse   = errors.New("el código de cuenta ya existe")
	ErrInvalidAccount = errors.New("datos de la cuenta inválidos")
	ErrInvalidPeriod  = errors.New("período inválido")
)

// CreateEntryRequest es la petición de un asiento manual
type CreateEntryRequest struct {
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Reference   string                `json:"reference"`
	Lines       []*domain.JournalLine `json:"lines"`
}

// Accountant define la interface del servicio contable
type Accountant interface {
	CreateEntry(req *CreateEntryRequest) (*domain.JournalEntry, error)
	ListEntries(startDate, endDate time.Time) ([]*domain.JournalEntry, error)
	GetTrialBalance(startDate, endDate time.Time) (*domain.TrialBalance, error)
	ListAccounts() ([]*domain.Account, error)
	CreateAccount(account *domain.Account) error
	SeedChartOfAccounts() error
}

type service struct {
	journalRepository repository.JournalRepository
}

// NewService crea una nueva instancia del servicio contable
func NewService(journalRepo repository.JournalRepository) Accountant {
	return &service{
		journalRepository: journalRepo,
	}
}

// CreateEntry registra un asiento manual. El asiento debe estar cuadrado y
// todas sus cuentas deben existir en el catálogo.
func (s *service) CreateEntry(req *CreateEntryRequest) (*domain.JournalEntry, error) {
	entry := &domain.JournalEntry{
		Date:        req.Date,
		Description: req.Description,
		Reference:   req.Reference,
		Lines:       req.Lines,
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	for _, line := range entry.Lines {
		account, err := s.journalRepository.GetAccountByCode(line.AccountCode)
		if err != nil {
			return nil, fmt.Errorf("error al verificar la cuenta %s: %w", line.AccountCode, err)
		}
		if account == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, line.AccountCode)
		}
	}

	if err := s.journalRepository.SaveEntry(entry); err != nil {
		return nil, fmt.Errorf("error al guardar el asiento: %w", err)
	}

	return entry, nil
}

// ListEntries lista los asientos del diario de un período
func (s *service) ListEntries(startDate, endDate time.Time) ([]*domain.JournalEntry, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidPeriod
	}
	return s.journalRepository.GetByDateRange(startDate, endDate)
}

// GetTrialBalance construye la balanza de comprobación de un período: una fila
// por cuenta con movimientos, con débitos, créditos y balance según la
// naturaleza de la cuenta
func (s *service) GetTrialBalance(startDate, endDate time.Time) (*domain.TrialBalance, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidPeriod
	}

	entries, err := s.journalRepository.GetByDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("error al leer los asientos del período: %w", err)
	}

	accounts, err := s.journalRepository.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("error al leer el catálogo de cuentas: %w", err)
	}

	accountsByCode := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		accountsByCode[account.Code] = account
	}

	type totals struct {
		debits  float64
		credits float64
	}
	movements := make(map[string]*totals)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			t, exists := movements[line.AccountCode]
			if !exists {
				t = &totals{}
				movements[line.AccountCode] = t
			}
			t.debits += line.Debit
			t.credits += line.Credit
		}
	}

	balance := &domain.TrialBalance{
		StartDate: startDate.Format(time.DateOnly),
		EndDate:   endDate.Format(time.DateOnly),
		Rows:      make([]*domain.TrialBalanceRow, 0, len(movements)),
	}

	for code, t := range movements {
		row := &domain.TrialBalanceRow{
			AccountCode: code,
			Debits:      utils.RoundWithTwoDecimalPlace(t.debits),
			Credits:     utils.RoundWithTwoDecimalPlace(t.credits),
		}
		if account, exists := accountsByCode[code]; exists {
			row.AccountName = account.Name
			row.Kind = account.Kind
		}
		row.Balance = balanceFor(row.Kind, row.Debits, row.Credits)

		balance.Rows = append(balance.Rows, row)
		balance.TotalDebits += row.Debits
		balance.TotalCredits += row.Credits
	}

	sort.Slice(balance.Rows, func(i, j int) bool {
		return balance.Rows[i].AccountCode < balance.Rows[j].AccountCode
	})

	balance.TotalDebits = utils.RoundWithTwoDecimalPlace(balance.TotalDebits)
	balance.TotalCredits = utils.RoundWithTwoDecimalPlace(balance.TotalCredits)

	return balance, nil
}

// ListAccounts lista las cuentas activas del catálogo
func (s *service) ListAccounts() ([]*domain.Account, error) {
	return s.journalRepository.ListAccounts()
}

// CreateAccount agrega una cuenta al catálogo
func (s *service) CreateAccount(account *domain.Account) error {
	if account.Code == "" || account.Name == "" || account.Kind == "" {
		return ErrInvalidAccount
	}

	existing, err := s.journalRepository.GetAccountByCode(account.Code)
	if err != nil {
		return fmt.Errorf("error al verificar la cuenta: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrAccountInUse, account.Code)
	}

	account.Active = true
	return s.journalRepository.SaveAccount(account)
}

// SeedChartOfAccounts registra el catálogo mínimo que usan los asientos
// automáticos de ventas y compras. La operación es idempotente.
func (s *service) SeedChartOfAccounts() error {
	seed := []*domain.Account{
		{Code: domain.AccountCodeCash, Name: "Caja", Kind: domain.AccountAsset},
		{Code: domain.AccountCodeReceivables, Name: "Cuentas por cobrar", Kind: domain.AccountAsset},
		{Code: domain.AccountCodeInventory, Name: "Inventario de mercancías", Kind: domain.AccountAsset},
		{Code: domain.AccountCodeITBISAdvanced, Name: "ITBIS adelantado", Kind: domain.AccountAsset},
		{Code: domain.AccountCodePayables, Name: "Cuentas por pagar suplidores", Kind: domain.AccountLiability},
		{Code: domain.AccountCodeITBISPayable, Name: "ITBIS por pagar", Kind: domain.AccountLiability},
		{Code: "3101", Name: "Capital del propietario", Kind: domain.AccountEquity},
		{Code: domain.AccountCodeSales, Name: "Ventas", Kind: domain.AccountIncome},
		{Code: domain.AccountCodeCOGS, Name: "Costo de ventas", Kind: domain.AccountExpense},
		{Code: "5201", Name: "Gastos generales", Kind: domain.AccountExpense},
	}

	for _, account := range seed {
		account.Active = true
		if err := s.journalRepository.SaveAccount(account); err != nil {
			return fmt.Errorf("error al registrar la cuenta %s: %w", account.Code, err)
		}
	}

	return nil
}

// balanceFor calcula el balance de una cuenta según su naturaleza: las cuentas
// de activo y gasto aumentan con el débito, el resto con el crédito
func balanceFor(kind domain.AccountKind, debits, credits float64) float64 {
	switch kind {
	case domain.AccountAsset, domain.AccountExpense:
		return utils.RoundWithTwoDecimalPlace(debits - credits)
	default:
		return utils.RoundWithTwoDecimalPlace(credits - debits)
	}
}

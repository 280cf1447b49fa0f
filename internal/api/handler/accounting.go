package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/accounting"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
)

func CreateJournalEntry(service accounting.Accountant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req accounting.CreateEntryRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar el asiento", nil)
			return
		}

		entry, err := service.CreateEntry(&req)
		if err != nil {
			logrus.Error(err)
			handleAccountingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logrus.Error(err)
		}
	}
}

func ListJournalEntries(service accounting.Accountant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startDate, endDate, ok := periodFromQuery(w, r)
		if !ok {
			return
		}

		entries, err := service.ListEntries(startDate, endDate)
		if err != nil {
			logrus.Error(err)
			handleAccountingError(w, err)
			return
		}

		writeJSON(w, entries)
	}
}

// GetTrialBalance retorna la balanza de comprobación de un período
func GetTrialBalance(service accounting.Accountant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startDate, endDate, ok := periodFromQuery(w, r)
		if !ok {
			return
		}

		balance, err := service.GetTrialBalance(startDate, endDate)
		if err != nil {
			logrus.Error(err)
			handleAccountingError(w, err)
			return
		}

		writeJSON(w, balance)
	}
}

func ListAccounts(service accounting.Accountant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := service.ListAccounts()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al listar el catálogo de cuentas", nil)
			return
		}

		writeJSON(w, accounts)
	}
}

func CreateAccount(service accounting.Accountant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var account domain.Account

		if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar la cuenta", nil)
			return
		}

		if err := service.CreateAccount(&account); err != nil {
			logrus.Error(err)
			handleAccountingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(account); err != nil {
			logrus.Error(err)
		}
	}
}

// periodFromQuery lee start_date y end_date del query string. Sin parámetros
// usa el mes en curso.
func periodFromQuery(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endDate := now

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, se espera AAAA-MM-DD", nil)
			return time.Time{}, time.Time{}, false
		}
		startDate = parsed
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, se espera AAAA-MM-DD", nil)
			return time.Time{}, time.Time{}, false
		}
		endDate = parsed
	}

	return startDate, endDate, true
}

// handleAccountingError traduce los errores contables a códigos de la API
func handleAccountingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounting.ErrUnknownAccount):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, accounting.ErrAccountInUse),
		errors.Is(err, accounting.ErrInvalidAccount),
		errors.Is(err, accounting.ErrInvalidPeriod):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, domain.ErrUnbalancedEntry):
		apiErrors.WriteError(w, apiErrors.ErrUnbalancedEntry, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al procesar la operación contable", nil)
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/selling"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

const dateQueryLayout = "2006-01-02"

func CreateSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selling.CreateSaleRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar la venta", nil)
			return
		}

		sale, err := service.CreateSale(r.Context(), &req)
		if err != nil {
			logrus.Error(err)
			handleSaleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logrus.Error(err)
		}
	}
}

func VoidSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if saleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID de la venta no provisto", nil)
			return
		}

		sale, err := service.VoidSale(r.Context(), saleID)
		if err != nil {
			logrus.Error(err)
			handleSaleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logrus.Error(err)
		}
	}
}

func GetSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if saleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID de la venta no provisto", nil)
			return
		}

		sale, err := service.GetSale(saleID)
		if err != nil {
			logrus.Error(err)
			handleSaleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al enviar la respuesta", nil)
			return
		}
	}
}

func ListSales(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := saleFiltersFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		sales, err := service.ListSales(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al listar las ventas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sales); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al enviar la respuesta", nil)
			return
		}
	}
}

// GetDailySummary retorna el cuadre del día. Sin parámetro usa la fecha actual.
func GetDailySummary(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := time.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := time.Parse(dateQueryLayout, raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Fecha inválida, se espera AAAA-MM-DD", nil)
				return
			}
			date = parsed
		}

		summary, err := service.GetDailySummary(date)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al generar el cuadre del día", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al enviar la respuesta", nil)
			return
		}
	}
}

// saleFiltersFromQuery arma los filtros de listado a partir del query string
func saleFiltersFromQuery(r *http.Request) (*domain.SaleFilters, error) {
	filters := &domain.SaleFilters{}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.New("start_date inválida, se espera AAAA-MM-DD")
		}
		filters.StartDate = parsed
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.New("end_date inválida, se espera AAAA-MM-DD")
		}
		filters.EndDate = parsed
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.SaleStatus(raw)
		filters.Status = &status
	}

	return filters, nil
}

// handleSaleError traduce los errores del flujo de venta a códigos de la API
func handleSaleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, selling.ErrSaleNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSaleNotFound, "Venta no encontrada", nil)

	case errors.Is(err, selling.ErrSaleAlreadyVoided):
		apiErrors.WriteError(w, apiErrors.ErrSaleAlreadyVoided, "La venta ya fue anulada", nil)

	case errors.Is(err, selling.ErrProductNotFound), errors.Is(err, selling.ErrProductInactive):
		apiErrors.WriteError(w, apiErrors.ErrProductNotFound, err.Error(), nil)

	case errors.Is(err, selling.ErrInsufficientStock):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientStock, err.Error(), nil)

	case errors.Is(err, repository.ErrSequenceExhausted), errors.Is(err, repository.ErrSequenceNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNCFExhausted, err.Error(), nil)

	case errors.Is(err, repository.ErrSequenceExpired):
		apiErrors.WriteError(w, apiErrors.ErrNCFExpired, err.Error(), nil)

	case errors.Is(err, selling.ErrEmptySale),
		errors.Is(err, selling.ErrInvalidQuantity),
		errors.Is(err, selling.ErrInvalidPaymentMethod),
		errors.Is(err, selling.ErrInsufficientPayment),
		errors.Is(err, selling.ErrCreditCustomerRequired),
		errors.Is(err, selling.ErrCreditFiscalRNCRequired):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al procesar la venta", nil)
	}
}

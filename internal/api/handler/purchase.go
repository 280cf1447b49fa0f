package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/purchasing"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
)

func CreateSupplier(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purchasing.CreateSupplierRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar el suplidor", nil)
			return
		}

		supplier, err := service.CreateSupplier(&req)
		if err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(supplier); err != nil {
			logrus.Error(err)
		}
	}
}

func GetSupplier(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if supplierID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID del suplidor no provisto", nil)
			return
		}

		supplier, err := service.GetSupplier(supplierID)
		if err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		writeJSON(w, supplier)
	}
}

func ListSuppliers(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := service.ListSuppliers()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al listar los suplidores", nil)
			return
		}

		writeJSON(w, suppliers)
	}
}

func UpdateSupplier(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if supplierID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID del suplidor no provisto", nil)
			return
		}

		var supplier domain.Supplier
		if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar el suplidor", nil)
			return
		}

		supplier.ID = supplierID

		if err := service.UpdateSupplier(&supplier); err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

func CreatePurchase(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purchasing.CreatePurchaseRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar la orden de compra", nil)
			return
		}

		purchase, err := service.CreatePurchase(&req)
		if err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(purchase); err != nil {
			logrus.Error(err)
		}
	}
}

func GetPurchase(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		purchaseID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if purchaseID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID de la orden no provisto", nil)
			return
		}

		purchase, err := service.GetPurchase(purchaseID)
		if err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		writeJSON(w, purchase)
	}
}

// ListPurchases lista las órdenes de compra de un rango de fechas.
// Sin parámetros usa los últimos 30 días.
func ListPurchases(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endDate := time.Now()
		startDate := endDate.AddDate(0, 0, -30)

		if raw := r.URL.Query().Get("start_date"); raw != "" {
			parsed, err := time.Parse(dateQueryLayout, raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, se espera AAAA-MM-DD", nil)
				return
			}
			startDate = parsed
		}

		if raw := r.URL.Query().Get("end_date"); raw != "" {
			parsed, err := time.Parse(dateQueryLayout, raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, se espera AAAA-MM-DD", nil)
				return
			}
			endDate = parsed
		}

		purchases, err := service.ListPurchases(startDate, endDate)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al listar las órdenes de compra", nil)
			return
		}

		writeJSON(w, purchases)
	}
}

// MarkPurchaseOrdered pasa una orden en borrador al estado ordenada
func MarkPurchaseOrdered(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		purchaseID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if purchaseID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID de la orden no provisto", nil)
			return
		}

		purchase, err := service.MarkOrdered(purchaseID)
		if err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		writeJSON(w, purchase)
	}
}

// ReceivePurchase registra la recepción de mercancía de una orden
func ReceivePurchase(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		purchaseID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if purchaseID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID de la orden no provisto", nil)
			return
		}

		var req purchasing.ReceivePurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar la recepción", nil)
			return
		}

		req.PurchaseID = purchaseID

		purchase, err := service.ReceivePurchase(&req)
		if err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		writeJSON(w, purchase)
	}
}

func ClosePurchase(service purchasing.Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		purchaseID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if purchaseID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID de la orden no provisto", nil)
			return
		}

		purchase, err := service.ClosePurchase(purchaseID)
		if err != nil {
			logrus.Error(err)
			handlePurchaseError(w, err)
			return
		}

		writeJSON(w, purchase)
	}
}

// handlePurchaseError traduce los errores de compras a códigos de la API
func handlePurchaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, purchasing.ErrSupplierNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSupplierNotFound, "Suplidor no encontrado", nil)

	case errors.Is(err, purchasing.ErrPurchaseNotFound):
		apiErrors.WriteError(w, apiErrors.ErrPurchaseNotFound, "Orden de compra no encontrada", nil)

	case errors.Is(err, purchasing.ErrInvalidTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, err.Error(), nil)

	case errors.Is(err, purchasing.ErrSupplierRNCInUse),
		errors.Is(err, purchasing.ErrInvalidSupplier),
		errors.Is(err, purchasing.ErrEmptyPurchase),
		errors.Is(err, purchasing.ErrInvalidReceipt),
		errors.Is(err, purchasing.ErrSupplierNCFRequired):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al procesar la orden de compra", nil)
	}
}

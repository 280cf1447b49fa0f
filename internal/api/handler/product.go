package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/inventorying"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
)

func CreateProduct(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inventorying.CreateProductRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar el producto", nil)
			return
		}

		product, err := service.CreateProduct(&req)
		if err != nil {
			logrus.Error(err)
			handleProductError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logrus.Error(err)
		}
	}
}

func GetProduct(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID del producto no provisto", nil)
			return
		}

		product, err := service.GetProduct(productID)
		if err != nil {
			logrus.Error(err)
			handleProductError(w, err)
			return
		}

		writeJSON(w, product)
	}
}

// GetProductByBarcode busca un producto por el código escaneado en caja
func GetProductByBarcode(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		barcode := httprouter.ParamsFromContext(r.Context()).ByName("barcode")
		if barcode == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Código de barras no provisto", nil)
			return
		}

		product, err := service.GetProductByBarcode(barcode)
		if err != nil {
			logrus.Error(err)
			handleProductError(w, err)
			return
		}

		writeJSON(w, product)
	}
}

func ListProducts(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive := r.URL.Query().Get("include_inactive") == "true"

		products, err := service.ListProducts(includeInactive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al listar los productos", nil)
			return
		}

		writeJSON(w, products)
	}
}

// ListLowStock retorna los productos en o por debajo de su nivel de reorden
func ListLowStock(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := service.ListLowStock()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al consultar las existencias bajas", nil)
			return
		}

		writeJSON(w, products)
	}
}

func UpdateProduct(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID del producto no provisto", nil)
			return
		}

		var req domain.UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar la petición", nil)
			return
		}

		req.ID = productID

		product, err := service.UpdateProduct(&req)
		if err != nil {
			logrus.Error(err)
			handleProductError(w, err)
			return
		}

		writeJSON(w, product)
	}
}

func AdjustStock(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID del producto no provisto", nil)
			return
		}

		var req inventorying.AdjustStockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Error al decodificar el ajuste", nil)
			return
		}

		req.ProductID = productID

		product, err := service.AdjustStock(&req)
		if err != nil {
			logrus.Error(err)
			handleProductError(w, err)
			return
		}

		writeJSON(w, product)
	}
}

// ListMovements retorna el kardex de un producto en un rango de fechas.
// Sin parámetros usa los últimos 30 días.
func ListMovements(service inventorying.Inventorier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID del producto no provisto", nil)
			return
		}

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

		movements, err := service.ListMovements(productID, startDate, endDate)
		if err != nil {
			logrus.Error(err)
			handleProductError(w, err)
			return
		}

		writeJSON(w, movements)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al enviar la respuesta", nil)
	}
}

// handleProductError traduce los errores de inventario a códigos de la API
func handleProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventorying.ErrProductNotFound):
		apiErrors.WriteError(w, apiErrors.ErrProductNotFound, "Producto no encontrado", nil)

	case errors.Is(err, inventorying.ErrBarcodeInUse):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, inventorying.ErrInvalidProduct),
		errors.Is(err, inventorying.ErrInvalidITBISRate),
		errors.Is(err, inventorying.ErrReasonRequired):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al procesar el producto", nil)
	}
}

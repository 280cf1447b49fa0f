package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de error estandarizados de la API
const (
	// Errores de autenticación
	ErrInvalidCredentials    = "AUTH_001" // PIN incorrecto
	ErrUserDisabled          = "AUTH_002" // Usuario desactivado
	ErrUserNotFound          = "AUTH_003" // Usuario no encontrado
	ErrUserLocked            = "AUTH_004" // Usuario bloqueado temporalmente
	ErrInvalidToken          = "AUTH_005" // Token inválido
	ErrExpiredToken          = "AUTH_006" // Token expirado
	ErrInsufficientPrivilege = "AUTH_007" // Privilegios insuficientes
	ErrUserAlreadyExists     = "AUTH_008" // Usuario ya existe

	// Errores de validación
	ErrInvalidRequest      = "VAL_001" // Petición inválida
	ErrMissingRequiredData = "VAL_002" // Datos obligatorios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de datos inválido

	// Errores del punto de venta y facturación
	ErrProductNotFound   = "POS_001" // Producto no encontrado
	ErrInsufficientStock = "POS_002" // Existencia insuficiente
	ErrSaleNotFound      = "POS_003" // Venta no encontrada
	ErrSaleAlreadyVoided = "POS_004" // Venta ya anulada
	ErrNCFExhausted      = "POS_005" // Secuencia de NCF agotada
	ErrNCFExpired        = "POS_006" // Secuencia de NCF vencida
	ErrUnbalancedEntry   = "POS_007" // Asiento contable descuadrado
	ErrSupplierNotFound  = "POS_008" // Suplidor no encontrado
	ErrPurchaseNotFound  = "POS_009" // Orden de compra no encontrada
	ErrInvalidTransition = "POS_010" // Transición de estado inválida

	// Errores del servidor
	ErrInternalServer    = "SRV_001" // Error interno del servidor
	ErrDatabaseOperation = "SRV_002" // Error de operación de base de datos
	ErrExternalService   = "SRV_003" // Error en servicio externo
)

// Mapeo de códigos de error a estados HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserLocked:            http.StatusForbidden,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrProductNotFound:       http.StatusNotFound,
	ErrInsufficientStock:     http.StatusConflict,
	ErrSaleNotFound:          http.StatusNotFound,
	ErrSaleAlreadyVoided:     http.StatusConflict,
	ErrNCFExhausted:          http.StatusConflict,
	ErrNCFExpired:            http.StatusConflict,
	ErrUnbalancedEntry:       http.StatusBadRequest,
	ErrSupplierNotFound:      http.StatusNotFound,
	ErrPurchaseNotFound:      http.StatusNotFound,
	ErrInvalidTransition:     http.StatusConflict,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError representa un error de API estandarizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError escribe el error estandarizado en la respuesta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError crea un error de API a partir de un error Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Error desconocido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}

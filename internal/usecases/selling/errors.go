package selling

import "errors"

// Errores del flujo de venta que los handlers mapean a códigos de la API
var (
	ErrEmptySale               = errors.New("la venta no tiene líneas")
	ErrInvalidQuantity         = errors.New("la cantidad debe ser mayor que cero")
	ErrProductNotFound         = errors.New("producto no encontrado")
	ErrProductInactive         = errors.New("producto desactivado")
	ErrInsufficientStock       = errors.New("existencia insuficiente")
	ErrInvalidPaymentMethod    = errors.New("forma de pago inválida")
	ErrInsufficientPayment     = errors.New("el monto pagado no cubre el total")
	ErrCreditCustomerRequired  = errors.New("la venta fiada requiere el nombre del cliente")
	ErrCreditFiscalRNCRequired = errors.New("el comprobante de crédito fiscal requiere el RNC del cliente")
	ErrSaleNotFound            = errors.New("venta no encontrada")
	ErrSaleAlreadyVoided       = errors.New("la venta ya fue anulada")
)

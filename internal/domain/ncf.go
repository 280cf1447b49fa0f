package domain

import (
	"fmt"
	"time"
)

// NCFType representa el tipo de comprobante fiscal según la DGII
type NCFType string

const (
	NCFCreditoFiscal       NCFType = "01" // Factura de crédito fiscal
	NCFConsumo             NCFType = "02" // Factura de consumo
	NCFNotaCredito         NCFType = "04" // Nota de crédito
	NCFRegimenesEspeciales NCFType = "14" // Regímenes especiales de tributación
)

// NCFSequence representa una secuencia de comprobantes autorizada por la DGII
type NCFSequence struct {
	Type      NCFType   `json:"type"`
	Serie     string    `json:"serie"`
	Next      int64     `json:"next"`
	Max       int64     `json:"max"`
	ExpiresAt time.Time `json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FormatNCF construye el número de comprobante: serie + tipo (2 dígitos) +
// secuencia de 8 dígitos, p. ej. B0200000001
func FormatNCF(serie string, ncfType NCFType, sequence int64) string {
	return fmt.Sprintf("%s%s%08d", serie, ncfType, sequence)
}

// Exhausted indica si la secuencia ya no tiene comprobantes disponibles
func (s *NCFSequence) Exhausted() bool {
	return s.Next > s.Max
}

// Expired indica si la secuencia ya venció para la fecha dada
func (s *NCFSequence) Expired(at time.Time) bool {
	return at.After(s.ExpiresAt)
}

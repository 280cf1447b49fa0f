package domain

import "time"

// MarketingSuggestion representa las promociones sugeridas por el asesor de
// marketing a partir de los segmentos de clientes
type MarketingSuggestion struct {
	Content     string    `json:"content"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

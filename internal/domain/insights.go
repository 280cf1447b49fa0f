package domain

import "time"

// Daypart representa la franja horaria de una venta
type Daypart string

const (
	DaypartMorning   Daypart = "manana" // 06:00 - 11:59
	DaypartAfternoon Daypart = "tarde"  // 12:00 - 17:59
	DaypartEvening   Daypart = "noche"  // 18:00 - 22:59
	DaypartNight     Daypart = "madrugada"
)

// BasketBand representa la banda de valor de la canasta
type BasketBand string

const (
	BasketSmall  BasketBand = "pequena" // < 200 DOP
	BasketMedium BasketBand = "mediana" // 200 - 1000 DOP
	BasketLarge  BasketBand = "grande"  // > 1000 DOP
)

// SaleFeatures representa los rasgos temporales y categóricos de una venta,
// extraídos para la segmentación y la predicción
type SaleFeatures struct {
	SaleID        string        `json:"sale_id"`
	Hour          int           `json:"hour"`
	Weekday       time.Weekday  `json:"weekday"`
	IsWeekend     bool          `json:"is_weekend"`
	Daypart       Daypart       `json:"daypart"`
	BasketBand    BasketBand    `json:"basket_band"`
	BasketValue   float64       `json:"basket_value"`
	ItemCount     int           `json:"item_count"`
	Categories    []string      `json:"categories"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// Segment representa un segmento de clientes derivado del historial de ventas
type Segment struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	SalesQuantity int            `json:"sales_quantity"`
	RevenueShare  float64        `json:"revenue_share"`
	AverageBasket float64        `json:"average_basket"`
	PeakHours     []int          `json:"peak_hours"`
	PeakDays      []time.Weekday `json:"peak_days"`
	TopCategories []string       `json:"top_categories"`
}

// Confianza de una predicción según la cantidad de muestras históricas
type Confidence string

const (
	ConfidenceNone   Confidence = "ninguna"
	ConfidenceLow    Confidence = "baja"
	ConfidenceMedium Confidence = "media"
	ConfidenceHigh   Confidence = "alta"
)

// HourOfWeekStats estadísticas históricas de una hora de la semana
type HourOfWeekStats struct {
	Weekday       time.Weekday `json:"weekday"`
	Hour          int          `json:"hour"`
	SampleDays    int          `json:"sample_days"`
	AverageCount  float64      `json:"average_count"`
	AverageAmount float64      `json:"average_amount"`
	MinAmount     float64      `json:"min_amount"`
	MaxAmount     float64      `json:"max_amount"`
	Confidence    Confidence   `json:"confidence"`
}

// TrafficForecast predicción de tráfico para una hora de la semana
type TrafficForecast struct {
	Weekday            time.Weekday `json:"weekday"`
	Hour               int          `json:"hour"`
	ExpectedCount      float64      `json:"expected_count"`
	ExpectedRevenue    float64      `json:"expected_revenue"`
	SeasonalMultiplier float64      `json:"seasonal_multiplier"`
	Confidence         Confidence   `json:"confidence"`
}

// TrafficStatus clasificación del período en curso frente al promedio histórico
type TrafficStatus string

const (
	TrafficBusy    TrafficStatus = "ocupado"
	TrafficSlow    TrafficStatus = "lento"
	TrafficNormal  TrafficStatus = "normal"
	TrafficUnknown TrafficStatus = "sin_historial"
)

// RealTimeInsight compara la ventana de ventas en curso con el histórico
type RealTimeInsight struct {
	WindowMinutes   int           `json:"window_minutes"`
	CurrentCount    int           `json:"current_count"`
	CurrentRevenue  float64       `json:"current_revenue"`
	ExpectedCount   float64       `json:"expected_count"`
	ExpectedRevenue float64       `json:"expected_revenue"`
	Status          TrafficStatus `json:"status"`
	Message         string        `json:"message"`
}

// InsightSnapshot representa una instantánea diaria precalculada de estadísticas,
// guardada por el agendador para servir el tablero sin recalcular
type InsightSnapshot struct {
	ID              int64              `json:"id"`
	Date            time.Time          `json:"date"`
	HourlyStats     []*HourOfWeekStats `json:"hourly_stats"`
	Segments        []*Segment         `json:"segments"`
	SeasonalByMonth map[string]float64 `json:"seasonal_by_month"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// InsightFilters filtros de período para las consultas de estadísticas
type InsightFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

package insighting

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

// Historial por defecto cuando la consulta no trae filtros de período
const defaultLookbackDays = 90

// Service implementa la interface Insighter sobre el repositorio de ventas
type Service struct {
	saleRepository     repository.SaleRepository
	snapshotRepository repository.InsightSnapshotRepository
	useSnapshots       bool
	lookbackDays       int
}

// NewService crea una nueva instancia del servicio de estadísticas
func NewService(saleRepo repository.SaleRepository) *Service {
	return &Service{
		saleRepository: saleRepo,
		useSnapshots:   false,
		lookbackDays:   defaultLookbackDays,
	}
}

// WithSnapshots habilita la cache de instantáneas precalculadas
func (s *Service) WithSnapshots(snapshotRepo repository.InsightSnapshotRepository) *Service {
	s.snapshotRepository = snapshotRepo
	s.useSnapshots = snapshotRepo != nil
	return s
}

// WithLookback ajusta la ventana de historial usada cuando la consulta no
// trae filtros de período
func (s *Service) WithLookback(days int) *Service {
	if days > 0 {
		s.lookbackDays = days
	}
	return s
}

// GetSegments deriva los segmentos de clientes del historial de ventas.
// Un error de lectura del almacén degrada a una lista vacía en vez de fallar.
func (s *Service) GetSegments(filters *domain.InsightFilters) ([]*domain.Segment, error) {
	sales := s.loadSales(filters)
	return BuildSegments(sales), nil
}

// GetHourlyStats calcula las estadísticas históricas por hora de la semana
func (s *Service) GetHourlyStats(filters *domain.InsightFilters) ([]*domain.HourOfWeekStats, error) {
	sales := s.loadSales(filters)
	return BuildHourlyStats(sales), nil
}

// GetForecast predice el tráfico esperado para una hora de la semana.
// Si hay una instantánea reciente usa sus estadísticas; si no, recalcula.
func (s *Service) GetForecast(weekday time.Weekday, hour int, month time.Month) (*domain.TrafficForecast, error) {
	if s.useSnapshots {
		snapshot, err := s.snapshotRepository.GetLatest()
		if err != nil {
			logrus.WithError(err).Warn("Error al buscar la instantánea de estadísticas, recalculando")
		} else if snapshot != nil && len(snapshot.HourlyStats) > 0 {
			return BuildForecast(snapshot.HourlyStats, snapshot.SeasonalByMonth, weekday, hour, month), nil
		}
	}

	sales := s.loadSales(nil)
	stats := BuildHourlyStats(sales)
	seasonal := BuildSeasonalMultipliers(sales)

	return BuildForecast(stats, seasonal, weekday, hour, month), nil
}

// GetRealTimeInsight compara la ventana de ventas en curso con el histórico
func (s *Service) GetRealTimeInsight(now time.Time) (*domain.RealTimeInsight, error) {
	windowStart := now.Add(-time.Duration(defaultWindowMinutes) * time.Minute)

	windowSales, err := s.saleRepository.GetByDateRange(windowStart, now)
	if err != nil {
		logrus.WithError(err).Warn("Error al buscar las ventas de la ventana en curso")
		windowSales = []*domain.Sale{}
	}

	stats := s.hourlyStatsForRealTime()

	return BuildRealTimeInsight(windowSales, stats, now, defaultWindowMinutes), nil
}

// hourlyStatsForRealTime prefiere la instantánea precalculada y cae al
// recálculo completo cuando no hay ninguna disponible
func (s *Service) hourlyStatsForRealTime() []*domain.HourOfWeekStats {
	if s.useSnapshots {
		snapshot, err := s.snapshotRepository.GetLatest()
		if err != nil {
			logrus.WithError(err).Warn("Error al buscar la instantánea de estadísticas, recalculando")
		} else if snapshot != nil && len(snapshot.HourlyStats) > 0 {
			return snapshot.HourlyStats
		}
	}

	return BuildHourlyStats(s.loadSales(nil))
}

// BuildSnapshot recalcula el perfil horario, los segmentos y los
// multiplicadores estacionales sobre el historial reciente y guarda la
// instantánea del día indicado
func (s *Service) BuildSnapshot(date time.Time) (*domain.InsightSnapshot, error) {
	sales := s.loadSales(nil)

	snapshot := &domain.InsightSnapshot{
		Date:            date,
		HourlyStats:     BuildHourlyStats(sales),
		Segments:        BuildSegments(sales),
		SeasonalByMonth: BuildSeasonalMultipliers(sales),
	}

	if s.snapshotRepository != nil {
		if err := s.snapshotRepository.SaveOrUpdate(snapshot); err != nil {
			return nil, err
		}
	}

	return snapshot, nil
}

// GetLatestSnapshot devuelve la instantánea precalculada más reciente
func (s *Service) GetLatestSnapshot() (*domain.InsightSnapshot, error) {
	if s.snapshotRepository == nil {
		return nil, nil
	}
	return s.snapshotRepository.GetLatest()
}

// loadSales busca las ventas del período solicitado; sin filtros usa el
// historial reciente. Un error de lectura degrada a una lista vacía.
func (s *Service) loadSales(filters *domain.InsightFilters) []*domain.Sale {
	var (
		startDate time.Time
		endDate   time.Time
	)

	now := time.Now()
	if filters != nil && filters.StartDate != nil {
		startDate = *filters.StartDate
	} else {
		startDate = now.AddDate(0, 0, -s.lookbackDays)
	}
	if filters != nil && filters.EndDate != nil {
		endDate = *filters.EndDate
	} else {
		endDate = now
	}

	sales, err := s.saleRepository.GetByDateRange(startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Warn("Error al buscar ventas para las estadísticas, devolviendo resultados vacíos")
		return []*domain.Sale{}
	}

	return sales
}

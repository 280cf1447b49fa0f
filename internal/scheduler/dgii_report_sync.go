package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/taxreporting"
)

// DGIIReportSyncConfig representa la configuración del job de reportes fiscales
type DGIIReportSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DGIIReportSyncService materializa cada mes los formatos 606 y 607 del mes
// anterior para que estén listos antes de la fecha límite de envío
type DGIIReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              DGIIReportSyncConfig
	reporter            taxreporting.Reporter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewDGIIReportSyncService crea una nueva instancia del servicio de reportes
func NewDGIIReportSyncService(reporter taxreporting.Reporter, appConfig *config.Config) *DGIIReportSyncService {
	syncConfig := DGIIReportSyncConfig{
		CronSchedule: appConfig.DGIIReportSync.CronSchedule,
		SyncEnabled:  appConfig.DGIIReportSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuración del job de reportes fiscales cargada")

	return &DGIIReportSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		reporter:    reporter,
		syncRunning: false,
	}
}

// Start inicia el agendador
func (s *DGIIReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Job de reportes fiscales deshabilitado por configuración")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando el job de reportes fiscales")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncReports()
	})
	if err != nil {
		return fmt.Errorf("error al agendar el job de reportes fiscales: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Deteniendo el job de reportes fiscales")
		s.scheduler.Stop()
	}()

	return nil
}

// syncReports genera los formatos 606 y 607 del mes anterior
func (s *DGIIReportSyncService) syncReports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Generación de reportes fiscales ya en curso, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	period := previousPeriod(time.Now())
	logrus.WithField("period", period).Info("Generando los reportes fiscales del período")

	for _, kind := range []domain.DGIIReportKind{domain.ReportKind607, domain.ReportKind606} {
		report, err := s.reporter.Generate(kind, period)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"kind":   kind,
				"period": period,
			}).Error("Error al generar el reporte fiscal")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"kind":      kind,
			"period":    period,
			"row_count": report.RowCount,
		}).Info("Reporte fiscal generado")
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"period":   period,
	}).Info("Generación de reportes fiscales concluida")

	s.lastSyncCompletedAt = time.Now()
}

// previousPeriod retorna el período AAAAMM del mes anterior a la fecha dada
func previousPeriod(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -1, 0).Format("200601")
}

// TriggerManualSync inicia manualmente la generación de los reportes
func (s *DGIIReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Generación de reportes fiscales ya en curso, ignorando la solicitud manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando generación manual de reportes fiscales")
	go s.syncReports()
}

// GetStatus retorna el estado actual del agendador
func (s *DGIIReportSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

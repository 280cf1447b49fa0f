package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/insighting"
)

// SnapshotSyncConfig representa la configuración del job de snapshots de insights
type SnapshotSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// SnapshotSyncService gestiona la materialización diaria del snapshot de
// insights: el perfil horario, los segmentos y los multiplicadores
// estacionales quedan precalculados para el dashboard
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	insighter           insighting.Insighter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewSnapshotSyncService crea una nueva instancia del servicio de snapshots
func NewSnapshotSyncService(insighter insighting.Insighter, appConfig *config.Config) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule: appConfig.SnapshotSync.CronSchedule,
		LookbackDays: appConfig.SnapshotSync.LookbackDays,
		SyncEnabled:  appConfig.SnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuración del job de snapshots de insights cargada")

	return &SnapshotSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		insighter:   insighter,
		syncRunning: false,
	}
}

// Start inicia el agendador
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Job de snapshots de insights deshabilitado por configuración")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando el job de snapshots de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSnapshot()
	})
	if err != nil {
		return fmt.Errorf("error al agendar el job de snapshots de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Deteniendo el job de snapshots de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSnapshot materializa el snapshot del día
func (s *SnapshotSyncService) syncSnapshot() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot de insights ya en curso, ignorando")
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

	logrus.Info("Calculando el snapshot diario de insights")

	snapshot, err := s.insighter.BuildSnapshot(time.Now())
	if err != nil {
		logrus.WithError(err).Error("Error al materializar el snapshot de insights")
		return
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":     duration.String(),
		"date":         snapshot.Date.Format(time.DateOnly),
		"hourly_stats": len(snapshot.HourlyStats),
		"segments":     len(snapshot.Segments),
	}).Info("Snapshot diario de insights materializado")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente la materialización del snapshot
func (s *SnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot de insights ya en curso, ignorando la solicitud manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando snapshot manual de insights")
	go s.syncSnapshot()
}

// GetStatus retorna el estado actual del agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

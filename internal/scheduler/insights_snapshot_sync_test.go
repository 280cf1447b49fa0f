package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

type fakeInsighter struct {
	snapshots int
	err       error
}

func (f *fakeInsighter) GetSegments(filters *domain.InsightFilters) ([]*domain.Segment, error) {
	return nil, nil
}

func (f *fakeInsighter) GetHourlyStats(filters *domain.InsightFilters) ([]*domain.HourOfWeekStats, error) {
	return nil, nil
}

func (f *fakeInsighter) GetForecast(weekday time.Weekday, hour int, month time.Month) (*domain.TrafficForecast, error) {
	return nil, nil
}

func (f *fakeInsighter) GetRealTimeInsight(now time.Time) (*domain.RealTimeInsight, error) {
	return nil, nil
}

func (f *fakeInsighter) BuildSnapshot(date time.Time) (*domain.InsightSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.snapshots++
	return &domain.InsightSnapshot{Date: date}, nil
}

func (f *fakeInsighter) GetLatestSnapshot() (*domain.InsightSnapshot, error) {
	return nil, nil
}

func TestSnapshotSyncService_SyncSnapshot(t *testing.T) {
	insighter := &fakeInsighter{}
	service := NewSnapshotSyncService(insighter, &config.Config{
		SnapshotSync: config.SnapshotSync{
			CronSchedule: "0 3 * * *",
			LookbackDays: 90,
			Enabled:      true,
		},
	})

	service.syncSnapshot()

	assert.Equal(t, 1, insighter.snapshots)
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestSnapshotSyncService_SyncSnapshot_Error(t *testing.T) {
	insighter := &fakeInsighter{err: errors.New("base de datos caída")}
	service := NewSnapshotSyncService(insighter, &config.Config{
		SnapshotSync: config.SnapshotSync{
			CronSchedule: "0 3 * * *",
			Enabled:      true,
		},
	})

	service.syncSnapshot()

	assert.Equal(t, 0, insighter.snapshots)
	assert.True(t, service.lastSyncCompletedAt.IsZero())
}

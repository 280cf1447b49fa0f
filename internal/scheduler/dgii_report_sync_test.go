package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

type fakeReporter struct {
	mu        sync.Mutex
	generated []string
	err       error
}

func (f *fakeReporter) Generate(kind domain.DGIIReportKind, period string) (*domain.DGIIReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.generated = append(f.generated, string(kind)+":"+period)
	return &domain.DGIIReport{Kind: kind, Period: period}, nil
}

func (f *fakeReporter) Get(kind domain.DGIIReportKind, period string) (*domain.DGIIReport, error) {
	return &domain.DGIIReport{Kind: kind, Period: period}, nil
}

func (f *fakeReporter) ListPeriods(kind domain.DGIIReportKind) ([]string, error) {
	return nil, nil
}

func (f *fakeReporter) ExportExcel(kind domain.DGIIReportKind, period string) ([]byte, error) {
	return nil, nil
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		now      time.Time
		expected string
	}{
		{time.Date(2025, 8, 1, 5, 0, 0, 0, time.UTC), "202507"},
		{time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC), "202507"},
		{time.Date(2025, 1, 1, 5, 0, 0, 0, time.UTC), "202412"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, previousPeriod(tt.now))
	}
}

func TestDGIIReportSyncService_SyncReports(t *testing.T) {
	reporter := &fakeReporter{}
	service := NewDGIIReportSyncService(reporter, &config.Config{
		DGIIReportSync: config.DGIIReportSync{
			CronSchedule: "0 5 1 * *",
			Enabled:      true,
		},
	})

	service.syncReports()

	expectedPeriod := previousPeriod(time.Now())
	assert.Equal(t, []string{
		"607:" + expectedPeriod,
		"606:" + expectedPeriod,
	}, reporter.generated)
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestDGIIReportSyncService_GetStatus(t *testing.T) {
	service := NewDGIIReportSyncService(&fakeReporter{}, &config.Config{
		DGIIReportSync: config.DGIIReportSync{
			CronSchedule: "0 5 1 * *",
			Enabled:      false,
		},
	})

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, "0 5 1 * *", status["sync_cron"])
}

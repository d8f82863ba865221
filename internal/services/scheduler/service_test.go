package scheduler

import (
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
)

func TestStartDisabledSchedule(t *testing.T) {
	svc := NewService(nil, nil, &common.ScheduleConfig{Enabled: false}, arbor.NewLogger())

	if err := svc.Start(); err != nil {
		t.Fatalf("disabled schedule should start as no-op: %v", err)
	}

	// Stop on a never-started scheduler must not block or panic
	svc.Stop()
}

func TestStartTwiceFails(t *testing.T) {
	svc := NewService(nil, nil, &common.ScheduleConfig{Enabled: true, Cron: "0 8 * * FRI"}, arbor.NewLogger())

	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer svc.Stop()

	if err := svc.Start(); err == nil {
		t.Error("second Start should fail while running")
	}
}

func TestStartRejectsInvalidCron(t *testing.T) {
	svc := NewService(nil, nil, &common.ScheduleConfig{Enabled: true, Cron: "not a cron expr"}, arbor.NewLogger())

	if err := svc.Start(); err == nil {
		t.Error("expected error for invalid cron expression")
		svc.Stop()
	}
}

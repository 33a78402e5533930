package scheduler

import (
	"context"
	"errors"
	"testing"
)

type fakeExporter struct {
	dirs []string
	err  error
}

func (f *fakeExporter) SaveTo(_ context.Context, dir string) (string, error) {
	f.dirs = append(f.dirs, dir)
	if f.err != nil {
		return "", f.err
	}
	return dir + "/backup.xlsx", nil
}

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New()
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestAddJobValidation(t *testing.T) {
	s := newTestScheduler(t)
	noop := func() error { return nil }

	if _, err := s.AddJob("", "* * * * *", noop); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("expected ErrEmptyJobName, got %v", err)
	}
	if _, err := s.AddJob("job", " ", noop); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("expected ErrEmptyCronExpr, got %v", err)
	}
	if _, err := s.AddJob("job", "not a cron", noop); err == nil {
		t.Fatal("expected invalid cron expression to fail")
	}
	job, err := s.AddJob("job", "0 3 * * *", noop)
	if err != nil {
		t.Fatalf("add job: %v", err)
	}
	if job.Name() != "job" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
}

func TestScheduleBackupsDisabledWithoutCron(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.ScheduleBackups("", "/tmp/backups", &fakeExporter{}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if n := len(s.scheduler.Jobs()); n != 0 {
		t.Fatalf("expected no jobs, got %d", n)
	}
	if err := s.ScheduleBackups("0 2 * * *", "/tmp/backups", &fakeExporter{}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if n := len(s.scheduler.Jobs()); n != 1 {
		t.Fatalf("expected one job, got %d", n)
	}
}

func TestBackupTaskWritesIntoDir(t *testing.T) {
	exp := &fakeExporter{}
	if err := BackupTask(exp, "/var/backups")(); err != nil {
		t.Fatalf("task: %v", err)
	}
	if len(exp.dirs) != 1 || exp.dirs[0] != "/var/backups" {
		t.Fatalf("unexpected dirs %v", exp.dirs)
	}

	exp.err = errors.New("disk full")
	if err := BackupTask(exp, "/var/backups")(); err == nil {
		t.Fatal("expected the failure to surface to the scheduler")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := newTestScheduler(t)
	s.Start()
	first := s.Stop()
	if second := s.Stop(); second != first {
		t.Fatalf("expected the same result, got %v then %v", first, second)
	}
}

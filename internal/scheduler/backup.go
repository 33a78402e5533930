package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	BackupJobName = "workbook-backup"
	backupTimeout = 5 * time.Minute
)

// Exporter writes a backup workbook into dir.
type Exporter interface {
	SaveTo(ctx context.Context, dir string) (string, error)
}

// BackupTask returns the job body that saves one workbook into dir.
func BackupTask(exp Exporter, dir string) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
		defer cancel()
		ctx = log.With().Str("job_name", BackupJobName).Logger().WithContext(ctx)

		path, err := exp.SaveTo(ctx, dir)
		if err != nil {
			return err
		}
		log.Ctx(ctx).Info().Str("path", path).Msg("Scheduled backup finished")
		return nil
	}
}

// ScheduleBackups registers the backup job when cronExpr is set.
func (s *Scheduler) ScheduleBackups(cronExpr, dir string, exp Exporter) error {
	if cronExpr == "" {
		log.Info().Msg("Scheduled backups disabled")
		return nil
	}
	_, err := s.AddJob(BackupJobName, cronExpr, BackupTask(exp, dir))
	return err
}

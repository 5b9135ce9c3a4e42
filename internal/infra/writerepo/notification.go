package writerepo

import (
	"context"
	"time"

	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/pkg/pgconv"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const createNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, status, run_at)
VALUES ($1, $2, $3, 'queued', $4)`

func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := dbtx.Exec(ctx, createNotificationJobSQL, kind, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

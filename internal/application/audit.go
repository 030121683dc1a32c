package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	repo "github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/pkg/events"
	"github.com/anistreamdev/anistream/pkg/helpers"
)

// TargetContact carries the target user's contact fields into the audit
// event so the notify worker does not need a database round trip.
type TargetContact struct {
	Email string
	Name  string
}

// AuditRecorder appends the durable audit row and then mirrors it onto the
// event queue. The database append is part of the mutation's logical
// operation: its failure propagates to the caller. Queue publication is
// best-effort only.
type AuditRecorder struct {
	Logs   repo.AdminLogRepository
	Events *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuditRecorder(logs repo.AdminLogRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuditRecorder {
	return &AuditRecorder{Logs: logs, Events: pub, Logger: logger}
}

func (r *AuditRecorder) Record(ctx context.Context, l *entity.AdminLog, contact *TargetContact) error {
	if err := r.Logs.Append(ctx, l); err != nil {
		return err
	}

	if r.Events == nil {
		return nil
	}
	ev := events.AuditEvent{
		Action:     l.Action,
		AdminID:    l.AdminID,
		TargetID:   l.TargetID,
		TargetType: l.TargetType,
		Details:    l.Details,
		OccurredAt: l.CreatedAt,
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if contact != nil {
		ev.TargetEmail = contact.Email
		ev.TargetName = contact.Name
	}
	if err := r.Events.PublishJSON(ctx, ev); err != nil && r.Logger != nil {
		r.Logger.WithError(err).WithField("action", l.Action).Warn("audit event publish failed")
	}
	return nil
}

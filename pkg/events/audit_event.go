package events

import "time"

// AuditEvent is the JSON payload published to RabbitMQ after a privileged
// mutation has been recorded in admin_logs. It mirrors the durable audit row
// and adds enough target context for the notify worker to act without a
// database round trip. Delivery is best-effort; the database row is the
// source of truth.
type AuditEvent struct {
	Action      string    `json:"action"`
	AdminID     int64     `json:"admin_id"`
	TargetID    *int64    `json:"target_id,omitempty"`
	TargetType  string    `json:"target_type,omitempty"`
	Details     string    `json:"details,omitempty"`
	TargetEmail string    `json:"target_email,omitempty"`
	TargetName  string    `json:"target_name,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

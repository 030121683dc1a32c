package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/anistreamdev/anistream/config"
	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/pkg/events"
	"github.com/anistreamdev/anistream/pkg/mailer"
)

// Consumes the audit event queue. Every event is logged; premium grant and
// revoke events additionally trigger a Mailgun notice to the target user.
func main() {
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQAuditQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled && cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		log.Println("mailgun not configured or sending disabled; events will only be logged")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQAuditQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQAuditQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx := context.Background()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev events.AuditEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			log.Printf("audit event: action=%s admin_id=%d target_type=%s", ev.Action, ev.AdminID, ev.TargetType)

			tpl := templateFor(ev.Action)
			if tpl == "" || mg == nil || ev.TargetEmail == "" {
				_ = msg.Ack(false)
				continue
			}

			subject, text, html, err := mailer.RenderPremiumNotice(tpl, mailer.PremiumNotice{
				Name:      ev.TargetName,
				ExpiresAt: expiryFrom(ev.Details),
			})
			if err != nil {
				log.Printf("render %s failed: %v", tpl, err)
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := mg.Send(c, ev.TargetEmail, subject, text, html); err != nil {
				cancel()
				log.Printf("send failed: %v", err)
				_ = msg.Nack(false, true)
				continue
			}
			cancel()
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("notify worker listening on queue=%s", cfg.RabbitMQAuditQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func templateFor(action string) string {
	switch action {
	case entity.ActionGrantPremium:
		return "premium_granted"
	case entity.ActionRevokePremium:
		return "premium_revoked"
	default:
		return ""
	}
}

// expiryFrom pulls expires_at out of the audit details JSON, if present.
func expiryFrom(details string) *time.Time {
	if details == "" {
		return nil
	}
	var d struct {
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.Unmarshal([]byte(details), &d); err != nil || d.ExpiresAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, d.ExpiresAt)
	if err != nil {
		return nil
	}
	return &t
}

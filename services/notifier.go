package services

import (
	"context"
	"fmt"
	"time"

	"openrole-api/config"
	"openrole-api/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Notification event types dispatched by the pipeline service.
const (
	EventApplicationSubmitted = "application_submitted"
	EventStatusChanged        = "application_status_changed"
)

// Notifier is the notification dispatcher collaborator. Calls are
// best-effort: the pipeline logs and swallows any error after the
// authoritative state change has committed.
type Notifier interface {
	Notify(userID int, event, title, message string, applicationID *string) error
}

// AnalyticsCounter is the daily-metric collaborator with
// insert-or-increment semantics.
type AnalyticsCounter interface {
	IncrementDailyMetric(ctx context.Context, jobID int, date time.Time, metric string) error
}

type dbNotifier struct {
	db *gorm.DB
}

// NewNotifier returns a dispatcher that records an in-app notification row
// and mirrors it to the user's email when SMTP is configured.
func NewNotifier(db *gorm.DB) Notifier {
	return &dbNotifier{db: db}
}

func (n *dbNotifier) Notify(userID int, event, title, message string, applicationID *string) error {
	notification := models.Notification{
		UserID:               userID,
		Title:                title,
		Message:              message,
		Type:                 notificationType(event),
		RelatedApplicationID: applicationID,
		IsRead:               false,
		CreateAt:             time.Now(),
	}
	if err := n.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	var user models.User
	if err := n.db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		return fmt.Errorf("lookup notification recipient: %w", err)
	}
	if err := config.SendMail([]string{user.Email}, title, "<p>"+message+"</p>"); err != nil {
		return fmt.Errorf("send notification mail: %w", err)
	}
	return nil
}

func notificationType(event string) string {
	switch event {
	case EventStatusChanged:
		return "info"
	case EventApplicationSubmitted:
		return "success"
	}
	return "info"
}

type redisAnalytics struct {
	client *redis.Client
}

// NewRedisAnalytics counts per-job daily metrics in Redis. INCR gives the
// required upsert semantics without a read-modify-write cycle.
func NewRedisAnalytics(client *redis.Client) AnalyticsCounter {
	return &redisAnalytics{client: client}
}

func (a *redisAnalytics) IncrementDailyMetric(ctx context.Context, jobID int, date time.Time, metric string) error {
	key := fmt.Sprintf("job_metrics:%d:%s:%s", jobID, date.Format("2006-01-02"), metric)
	return a.client.Incr(ctx, key).Err()
}

type noopAnalytics struct{}

// NewNoopAnalytics is used when no Redis endpoint is configured.
func NewNoopAnalytics() AnalyticsCounter { return noopAnalytics{} }

func (noopAnalytics) IncrementDailyMetric(context.Context, int, time.Time, string) error {
	return nil
}

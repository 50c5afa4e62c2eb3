package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NotificationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharespace_notifications_created_total",
		Help: "Total notification records created",
	})
	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharespace_notification_failures_total",
		Help: "Total notification persistence failures (suppressed, never surfaced)",
	})
	DeliveryAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharespace_delivery_attempts_total",
		Help: "Total live delivery pushes attempted",
	})
	DeliveryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharespace_delivery_failures_total",
		Help: "Total per-connection delivery failures (best effort, ignored)",
	})
	ModerationRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharespace_moderation_rejections_total",
		Help: "Total messages/comments rejected as abusive",
	})
	ModerationErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sharespace_moderation_errors_total",
		Help: "Total classifier call failures (content rejected, fail closed)",
	})
	OnlineUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sharespace_online_users",
		Help: "Users with at least one live connection",
	})
)

func init() {
	prometheus.MustRegister(
		NotificationsCreated,
		NotificationFailures,
		DeliveryAttempts,
		DeliveryFailures,
		ModerationRejections,
		ModerationErrors,
		OnlineUsers,
	)
}

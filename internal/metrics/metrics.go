// Package metrics объявляет метрики Prometheus сервиса.
//
// Метрики регистрируются в реестре по умолчанию при импорте пакета и
// отдаются на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// AccessDecisionsTotal считает решения о доступе.
// Метки: resource (тип ресурса), action, result ("granted" или "denied").
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access decisions by resource, action and result.",
	},
	[]string{"resource", "action", "result"},
)

// AccessLogWriteErrorsTotal считает записи журнала доступа, которые не удалось сохранить.
var AccessLogWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_log_write_errors_total",
		Help:      "Total number of access log entries that failed to persist.",
	},
)

// AccessLogCleanupDeletedTotal считает удалённые при очистке записи журнала.
var AccessLogCleanupDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_log_cleanup_deleted_total",
		Help:      "Total number of access log rows removed by retention cleanup.",
	},
)

// NotificationsTotal считает исходы доставки уведомлений.
// Метки: channel ("in_app" или "email"), outcome ("sent", "skipped", "failed").
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification deliveries by channel and outcome.",
	},
	[]string{"channel", "outcome"},
)

// EmailsSentTotal считает письма, отправленные воркером. Метка result: "ok", "error" или "dropped".
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of e-mails handed to the SMTP server.",
	},
	[]string{"result"},
)

// Result переводит флаг решения в значение метки result.
func Result(granted bool) string {
	if granted {
		return "granted"
	}
	return "denied"
}

package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	accountsScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifecycle_accounts_scanned_total",
		Help: "Количество учетных записей, обработанных ежедневной проверкой.",
	})
	warningsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifecycle_warnings_total",
		Help: "Количество предупреждений о скором окончании подписки.",
	})
	expirationsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifecycle_expirations_total",
		Help: "Количество уведомлений об истечении подписки.",
	})
	suspensionsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifecycle_suspensions_total",
		Help: "Количество учетных записей, заблокированных за неоплату.",
	})
)

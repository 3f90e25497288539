package platform

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultLabel                = "result"
	resultOK                   = "ok"
	resultUnexpectedReturnCode = "unexpected_return_code"
	resultError                = "error"
)

var (
	// MetricsRegistry holds the platform collectors.
	MetricsRegistry = prometheus.NewRegistry()

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mfd_platform_commands_total",
			Help: "Commands executed through a platform connection, by result.",
		},
		[]string{resultLabel},
	)
)

func init() {
	MetricsRegistry.MustRegister(commandsTotal)
}

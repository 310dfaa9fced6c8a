// Package metrics exposes the bot's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts incoming chat commands by name, including ones
	// that end up rejected.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fizzybot",
		Name:      "commands_total",
		Help:      "Chat commands received, by command name.",
	}, []string{"command"})

	// ResultsTotal counts command outcomes by error class.
	ResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fizzybot",
		Name:      "results_total",
		Help:      "Command outcomes, by outcome class.",
	}, []string{"outcome"})

	// CallbacksTotal counts keyboard callback events.
	CallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fizzybot",
		Name:      "callbacks_total",
		Help:      "Keyboard callbacks received, by action.",
	}, []string{"action"})

	// AllocationRetries counts card-number allocation transactions that
	// lost the race and were retried.
	AllocationRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fizzybot",
		Name:      "card_number_allocation_retries_total",
		Help:      "Card creations retried after a duplicate-number conflict.",
	})
)

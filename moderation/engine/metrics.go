package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messageProcessDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "bouncer_message_duration_sec",
	Help: "Total duration of message processing",
})

var messageProcessCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bouncer_messages_processed",
	Help: "Number of messages processed",
})

var messageErrorCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bouncer_message_errors",
	Help: "Number of messages which failed processing",
})

var messageDeleteCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bouncer_messages_deleted",
	Help: "Number of messages deleted via the gateway",
})

var restrictionCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bouncer_restrictions_applied",
	Help: "Number of sender restrictions applied",
}, []string{"reason"})

var restrictionFailCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bouncer_restrictions_failed",
	Help: "Number of sender restrictions which failed at the gateway",
}, []string{"reason"})

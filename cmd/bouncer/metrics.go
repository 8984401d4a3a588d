package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("bouncer")

var messagesReceived = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bouncer_inbound_messages_received",
	Help: "Number of inbound messages received from the gateway",
})

var messagesFailed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bouncer_inbound_messages_failed",
	Help: "Number of inbound messages that failed processing",
})

var currentOffset = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "bouncer_current_offset",
	Help: "Current update offset",
})

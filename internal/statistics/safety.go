package statistics

import (
	"strconv"

	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/safety"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSafety = "safety"

type SafetyCollector struct {
	board *engine.Board

	triggered *prometheus.Desc
	trips     *prometheus.CounterVec
}

func NewSafetyCollector(board *engine.Board) *SafetyCollector {
	return &SafetyCollector{
		board: board,
		triggered: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSafety, "triggered"),
			"Whether the thermal safety latch is set (1) or not (0)",
			nil, nil,
		),
		trips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSafety,
			Name:      "trips_total",
			Help:      "Number of thermal safety trips since start, by triggering segment",
		}, []string{"segment"}),
	}
}

// RecordTrip counts a thermal safety trip, it is meant to be registered as trip listener
func (collector *SafetyCollector) RecordTrip(trip safety.Trip) {
	collector.trips.WithLabelValues(strconv.Itoa(trip.Channel + 1)).Inc()
}

func (collector *SafetyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.triggered
	collector.trips.Describe(ch)
}

// Collect implements required collect function for all prometheus collectors
func (collector *SafetyCollector) Collect(ch chan<- prometheus.Metric) {
	system := collector.board.System()
	ch <- prometheus.MustNewConstMetric(collector.triggered, prometheus.GaugeValue, boolToFloat(system.SafetyTriggered))
	collector.trips.Collect(ch)
}

package statistics

import (
	"strconv"

	"github.com/markusressel/bed2go/internal/engine"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemChannel = "channel"

type ChannelCollector struct {
	board *engine.Board

	temperature *prometheus.Desc
	average     *prometheus.Desc
	active      *prometheus.Desc
	heating     *prometheus.Desc
	fault       *prometheus.Desc
}

func NewChannelCollector(board *engine.Board) *ChannelCollector {
	labels := []string{"id", "section"}
	return &ChannelCollector{
		board: board,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemChannel, "temperature"),
			"Last temperature reading of the channel in °C",
			labels, nil,
		),
		average: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemChannel, "temperature_avg"),
			"Average of the recent valid temperature readings of the channel in °C",
			labels, nil,
		),
		active: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemChannel, "active"),
			"Whether the channel is enabled (1) or not (0)",
			labels, nil,
		),
		heating: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemChannel, "heating"),
			"Whether the relay of the channel is energized (1) or not (0)",
			labels, nil,
		),
		fault: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemChannel, "sensor_fault"),
			"Whether the last reading of the channel failed (1) or not (0)",
			labels, nil,
		),
	}
}

func (collector *ChannelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.average
	ch <- collector.active
	ch <- collector.heating
	ch <- collector.fault
}

// Collect implements required collect function for all prometheus collectors
func (collector *ChannelCollector) Collect(ch chan<- prometheus.Metric) {
	for _, channel := range collector.board.Snapshot().Channels {
		id := strconv.Itoa(channel.ID)
		section := strconv.Itoa(channel.Section)
		if len(channel.Fault) <= 0 {
			ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, channel.Temperature, id, section)
		}
		ch <- prometheus.MustNewConstMetric(collector.average, prometheus.GaugeValue, channel.Average, id, section)
		ch <- prometheus.MustNewConstMetric(collector.active, prometheus.GaugeValue, boolToFloat(channel.Active), id, section)
		ch <- prometheus.MustNewConstMetric(collector.heating, prometheus.GaugeValue, boolToFloat(channel.Heating), id, section)
		ch <- prometheus.MustNewConstMetric(collector.fault, prometheus.GaugeValue, boolToFloat(len(channel.Fault) > 0), id, section)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}

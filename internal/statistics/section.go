package statistics

import (
	"strconv"

	"github.com/markusressel/bed2go/internal/engine"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSection = "section"

type SectionCollector struct {
	board *engine.Board

	target  *prometheus.Desc
	average *prometheus.Desc
	output  *prometheus.Desc
}

func NewSectionCollector(board *engine.Board) *SectionCollector {
	return &SectionCollector{
		board: board,
		target: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSection, "target"),
			"Target temperature of the section in °C",
			[]string{"id"}, nil,
		),
		average: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSection, "temperature"),
			"Average temperature of the section in °C",
			[]string{"id", "source"}, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSection, "output"),
			"Last value written to the aggregate output of the section",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SectionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.target
	ch <- collector.average
	ch <- collector.output
}

// Collect implements required collect function for all prometheus collectors
func (collector *SectionCollector) Collect(ch chan<- prometheus.Metric) {
	for _, section := range collector.board.Snapshot().Sections {
		id := strconv.Itoa(section.ID)
		ch <- prometheus.MustNewConstMetric(collector.target, prometheus.GaugeValue, section.Target, id)
		ch <- prometheus.MustNewConstMetric(collector.average, prometheus.GaugeValue, section.Average, id, section.AverageSource)
		if section.Output >= 0 {
			ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, float64(section.Output), id)
		}
	}
}

package statistics

import (
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace = "bed2go"
)

// NewRegistry creates a registry with the runtime collectors of the process
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	Register(registry,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// RegisterBoard registers all collectors of the controller and returns the
// safety collector, so trips can be recorded on it
func RegisterBoard(registerer prometheus.Registerer, board *engine.Board) *SafetyCollector {
	safetyCollector := NewSafetyCollector(board)
	Register(registerer,
		NewChannelCollector(board),
		NewSectionCollector(board),
		safetyCollector,
	)
	return safetyCollector
}

func Register(registerer prometheus.Registerer, collectors ...prometheus.Collector) {
	registerer.MustRegister(collectors...)
}

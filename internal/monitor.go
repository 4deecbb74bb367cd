package internal

import (
	"context"
	"time"

	"github.com/markusressel/bed2go/internal/command"
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/ui"
)

// StatusMonitor prints the monitoring report periodically while debug mode is on
type StatusMonitor struct {
	board    *engine.Board
	interval time.Duration
	print    func(report string)
}

func NewStatusMonitor(board *engine.Board, interval time.Duration) *StatusMonitor {
	return &StatusMonitor{
		board:    board,
		interval: interval,
		print: func(report string) {
			ui.Printfln("%s", report)
		},
	}
}

func (s *StatusMonitor) Run(ctx context.Context) error {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			s.report()
		}
	}
}

func (s *StatusMonitor) report() bool {
	status := s.board.Snapshot()
	if !status.System.Debug {
		return false
	}
	s.print(command.DebugReport(status))
	return true
}

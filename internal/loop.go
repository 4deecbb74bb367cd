package internal

import (
	"context"
	"time"

	"github.com/markusressel/bed2go/internal/command"
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/link"
	"github.com/markusressel/bed2go/internal/ui"
)

// ControlLoop owns the engine. Control cycles and commands are processed
// sequentially, so a command never interleaves with a cycle.
type ControlLoop struct {
	engine     *engine.Engine
	dispatcher *command.Dispatcher
	lines      <-chan link.Line
	tickRate   time.Duration
}

func NewControlLoop(e *engine.Engine, lines <-chan link.Line, tickRate time.Duration) *ControlLoop {
	return &ControlLoop{
		engine:     e,
		dispatcher: command.NewDispatcher(e),
		lines:      lines,
		tickRate:   tickRate,
	}
}

func (l *ControlLoop) Run(ctx context.Context) error {
	if err := l.engine.Init(); err != nil {
		return err
	}
	ui.Info("Control loop started, %d segments in %d sections", l.engine.Channels(), len(l.engine.SectionIds()))

	ticker := time.NewTicker(l.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping control loop, switching all segments off...")
			return l.engine.DeactivateAll()
		case <-ticker.C:
			l.engine.Cycle(ctx)
		case line := <-l.lines:
			l.handle(line)
		}
	}
}

func (l *ControlLoop) handle(line link.Line) {
	response := l.dispatcher.Handle(line.Text, line.Origin)
	if line.Reply == nil {
		ui.Printfln("%s", response)
		return
	}
	if err := line.Reply(response); err != nil {
		ui.Warning("Unable to send response to %s: %v", line.Origin, err)
	}
}

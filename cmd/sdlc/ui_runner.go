package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sdlc/internal/pipeline"
	"sdlc/internal/ui"
)

// runPipelineWithUI mirrors the teacher's runBuildWithUI: the actual work
// runs in a goroutine feeding a Bubble Tea progress model over an events
// channel, while program.Run() owns the terminal in the foreground until
// the model quits.
func runPipelineWithUI(title string, targets []string, work func(events chan<- pipeline.Event) error) error {
	events := make(chan pipeline.Event, 64)
	outcomeCh := make(chan error, 1)

	go func() {
		err := work(events)
		outcomeCh <- err
		close(events)
	}()

	model := ui.NewProgressModel(title, targets, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, uiErr := program.Run(); uiErr != nil {
		<-outcomeCh
		return uiErr
	}
	return <-outcomeCh
}

func traceEmit(w io.Writer, enabled bool, ev pipeline.Event) {
	if enabled {
		fmt.Fprintf(w, "trace: target=%q stage=%d status=%d\n", ev.Target, ev.Stage, ev.Status)
	}
}

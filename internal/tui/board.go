package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/flavor"
)

// RunBoard opens the interactive task board. save, when non-nil, runs after
// every change. Chat messages the service produces while the board is open are
// shown in its footer.
func RunBoard(ctx context.Context, svc *engine.Service, save func(context.Context) error, out io.Writer) error {
	m := newBoardModel(ctx, svc, save)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	svc.SetSink(engine.SinkFunc(func(msg flavor.Message) { p.Send(chatMsg(msg)) }))
	defer svc.SetSink(engine.Discard)

	_, err := p.Run()
	return err
}

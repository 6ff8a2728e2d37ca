// Package teatest runs bubbletea models in tests without a tea.Program.
//
// A Driver feeds messages to Update on the test goroutine and executes the
// returned commands itself, feeding their messages back in until nothing is
// left. Commands that do not return within a short deadline (timers, blink
// ticks) are dropped.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxChain bounds how many command generations one Send may trigger.
const maxChain = 64

// cmdDeadline separates immediate commands from ones waiting on timers.
const cmdDeadline = 25 * time.Millisecond

// Driver owns a model under test.
type Driver struct {
	t     *testing.T
	model tea.Model

	// Quit is set once a tea.Quit command has run.
	Quit bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(width, height int) Option {
	return func(d *Driver) {
		d.model, _ = d.model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.run(d.model.Init(), 0)
	return d
}

// Model returns the current model value.
func (d *Driver) Model() tea.Model {
	return d.model
}

// View renders the current model.
func (d *Driver) View() string {
	return d.model.View()
}

// Send delivers msg and runs whatever it triggers. It is a no-op after quit.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.run(cmd, 0)
}

func (d *Driver) Key(t tea.KeyType) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

// Runes sends each rune of s as its own key press.
func (d *Driver) Runes(s string) {
	d.t.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxChain {
		d.t.Logf("teatest: stopped after %d chained commands", maxChain)
		return
	}

	msg, ok := await(cmd)
	if !ok || msg == nil {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		var next tea.Cmd
		d.model, next = d.model.Update(msg)
		d.run(next, depth+1)
	}
}

func await(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdDeadline):
		return nil, false
	}
}

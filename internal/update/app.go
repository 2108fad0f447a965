package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todomvc/internal/dispatch"
	"github.com/sandeepkv93/todomvc/internal/log"
	"github.com/sandeepkv93/todomvc/internal/model"
	"github.com/sandeepkv93/todomvc/internal/views"
)

type dispatchedMsg struct {
	msg Msg
}

// Program is the runtime loop. It owns the current model, applies one message
// at a time and keeps the surface in step with Render.
type Program struct {
	state       model.Model
	surface     *views.Surface[Msg]
	mailbox     *dispatch.Mailbox[Msg]
	help        helpPanel
	helpVisible bool
	width       int
	quitting    bool
	blurred     []Msg
}

func NewProgram(cfg RuntimeConfig) *Program {
	p := &Program{
		state:   cfg.InitialModel(),
		surface: views.NewSurface[Msg](),
		mailbox: dispatch.NewMailbox[Msg](cfg.DispatchBuffer),
		help:    newHelpPanel(),
		width:   64,
	}
	p.surface.Attach(Render(p.state))
	log.Info().
		Str("title", p.state.Title).
		Str("filter", string(p.state.Filter)).
		Msg("program attached")
	return p
}

func (p *Program) State() model.Model { return p.state }

func (p *Program) Surface() *views.Surface[Msg] { return p.surface }

func (p *Program) Init() tea.Cmd {
	p.mailbox.Start()
	return waitForDispatchCmd(p.mailbox.C())
}

func (p *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c":
			p.quitting = true
			log.Info().Int("items", len(p.state.Items)).Msg("quit requested")
			return p, tea.Quit
		case "f1":
			p.helpVisible = !p.helpVisible
			return p, nil
		}
		for _, m := range p.surface.HandleKey(typed) {
			p.Apply(m)
		}
		return p, nil
	case tea.WindowSizeMsg:
		p.width = typed.Width
		p.surface.SetWidth(typed.Width - 4)
		return p, nil
	case dispatchedMsg:
		p.Apply(typed.msg)
		return p, waitForDispatchCmd(p.mailbox.C())
	}
	return p, nil
}

func (p *Program) View() string {
	if p.quitting {
		return ""
	}
	out := p.surface.View()
	if p.helpVisible {
		out += "\n" + p.help.View(p.width)
	}
	return out
}

// Apply runs one full cycle for msg: transition, render, patch, then the
// commands the transition asked for.
func (p *Program) Apply(msg Msg) {
	next, cmds := Update(p.state, msg)
	p.state = next
	p.surface.Patch(Render(p.state))
	if _, noop := msg.(NoopMsg); !noop {
		log.Debug().
			Str("msg", fmt.Sprintf("%T", msg)).
			Interface("payload", msg).
			Int("items", len(p.state.Items)).
			Int("commands", len(cmds)).
			Msg("message applied")
	}
	for _, cmd := range cmds {
		log.Debug().Str("cmd", fmt.Sprintf("%T", cmd.Msg)).Msg("running command")
		cmd.Run(p)
	}
	// Blurs caused by a focus command apply right away, like those from tab.
	blurred := p.blurred
	p.blurred = nil
	for _, m := range blurred {
		p.Apply(m)
	}
}

// Close stops the mailbox; pending deliveries are dropped.
func (p *Program) Close() {
	p.mailbox.Stop()
}

func (p *Program) Dispatch(msg Msg) {
	if err := p.mailbox.Post(msg); err != nil {
		log.Warn().Err(err).Str("msg", fmt.Sprintf("%T", msg)).Msg("dispatch dropped")
	}
}

func (p *Program) DispatchAfter(msg Msg, d time.Duration) {
	if err := p.mailbox.PostAfter(msg, d); err != nil {
		log.Warn().Err(err).Str("msg", fmt.Sprintf("%T", msg)).Msg("dispatch dropped")
	}
}

// Focus moves focus on the surface. Messages caused by the blur of the
// previously focused element are applied once the current commands finish.
func (p *Program) Focus(selector string) error {
	blurred, err := p.surface.Focus(selector)
	if err != nil {
		log.Warn().Err(err).Str("selector", selector).Msg("focus target missing")
		return err
	}
	p.blurred = append(p.blurred, blurred...)
	return nil
}

func waitForDispatchCmd(ch <-chan Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return dispatchedMsg{msg: msg}
	}
}

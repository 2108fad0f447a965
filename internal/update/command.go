package update

import (
	"fmt"
	"time"
)

// Runtime is what a command handler may touch: the loop's mailbox and the
// host's focus primitive.
type Runtime interface {
	Dispatch(msg Msg)
	DispatchAfter(msg Msg, d time.Duration)
	Focus(selector string) error
}

type Handler func(msg Msg, rt Runtime)

// Command is a side effect requested by a transition. The runtime runs
// Handler with Msg once, after the model it came with has been rendered.
type Command struct {
	Msg     Msg
	Handler Handler
}

func (c Command) Run(rt Runtime) {
	c.Handler(c.Msg, rt)
}

const (
	SelectorPending = ".new-todo"
	SelectorEdit    = ".edit"
	SelectorPalette = ".palette-input"
)

var focusTargets = map[Msg]string{
	FocusPendingMsg{}: SelectorPending,
	FocusEditMsg{}:    SelectorEdit,
	FocusPaletteMsg{}: SelectorPalette,
}

func focusCommand(msg Msg) Command {
	selector, ok := focusTargets[msg]
	if !ok {
		panic(fmt.Errorf("%w: no focus target for %#v", ErrContractViolation, msg))
	}
	return Command{Msg: msg, Handler: focusHandler(msg, selector)}
}

// focusHandler builds a handler that only accepts want.
func focusHandler(want Msg, selector string) Handler {
	return func(msg Msg, rt Runtime) {
		if msg != want {
			panic(fmt.Errorf("%w: focus handler for %T invoked with %#v", ErrContractViolation, want, msg))
		}
		if err := rt.Focus(selector); err != nil {
			panic(fmt.Errorf("%w: focus %s after render: %v", ErrContractViolation, selector, err))
		}
	}
}

func clearStatusCommand(msg ClearStatusMsg, after time.Duration) Command {
	return Command{Msg: msg, Handler: func(got Msg, rt Runtime) {
		c, ok := got.(ClearStatusMsg)
		if !ok || c != msg {
			panic(fmt.Errorf("%w: clear-status handler invoked with %#v", ErrContractViolation, got))
		}
		if after <= 0 {
			rt.Dispatch(c)
			return
		}
		rt.DispatchAfter(c, after)
	}}
}

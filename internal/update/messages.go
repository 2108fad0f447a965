package update

import "github.com/sandeepkv93/todomvc/internal/model"

// Msg is the closed set of intents Update understands. Every variant is a
// comparable struct, so messages can be compared with ==.
type Msg interface {
	isMsg()
}

type NoopMsg struct{}

type FocusPendingMsg struct{}

type UpdatePendingMsg struct {
	Text string
}

type AddTodoMsg struct{}

type RemoveTodoMsg struct {
	ID model.ItemID
}

type ToggleTodoMsg struct {
	ID model.ItemID
}

type EditTodoMsg struct {
	ID model.ItemID
}

type FocusEditMsg struct{}

type UpdateEditMsg struct {
	Text string
}

type SaveEditMsg struct{}

type AbortEditMsg struct{}

type ClearCompletedMsg struct{}

type ToggleAllMsg struct{}

type ShowAllMsg struct{}

type ShowActiveMsg struct{}

type ShowCompletedMsg struct{}

type OpenPaletteMsg struct{}

type FocusPaletteMsg struct{}

type UpdatePaletteMsg struct {
	Text string
}

type RunPaletteMsg struct{}

type ClosePaletteMsg struct{}

type ClearStatusMsg struct {
	Seq int
}

func (NoopMsg) isMsg()           {}
func (FocusPendingMsg) isMsg()   {}
func (UpdatePendingMsg) isMsg()  {}
func (AddTodoMsg) isMsg()        {}
func (RemoveTodoMsg) isMsg()     {}
func (ToggleTodoMsg) isMsg()     {}
func (EditTodoMsg) isMsg()       {}
func (FocusEditMsg) isMsg()      {}
func (UpdateEditMsg) isMsg()     {}
func (SaveEditMsg) isMsg()       {}
func (AbortEditMsg) isMsg()      {}
func (ClearCompletedMsg) isMsg() {}
func (ToggleAllMsg) isMsg()      {}
func (ShowAllMsg) isMsg()        {}
func (ShowActiveMsg) isMsg()     {}
func (ShowCompletedMsg) isMsg()  {}
func (OpenPaletteMsg) isMsg()    {}
func (FocusPaletteMsg) isMsg()   {}
func (UpdatePaletteMsg) isMsg()  {}
func (RunPaletteMsg) isMsg()     {}
func (ClosePaletteMsg) isMsg()   {}
func (ClearStatusMsg) isMsg()    {}

func showMsg(f model.Filter) Msg {
	switch f {
	case model.FilterActive:
		return ShowActiveMsg{}
	case model.FilterCompleted:
		return ShowCompletedMsg{}
	default:
		return ShowAllMsg{}
	}
}

package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/todomvc/internal/commands"
	"github.com/sandeepkv93/todomvc/internal/model"
)

// ErrContractViolation marks a message that is inconsistent with the model it
// was applied to. Update panics with an error wrapping it.
var ErrContractViolation = errors.New("update: contract violation")

// Update applies msg to a copy of m and returns the new model together with
// the commands the runtime must run once the new model has been rendered.
// The model passed in is never modified.
func Update(m model.Model, msg Msg) (model.Model, []Command) {
	next := m.Clone()
	cmds := step(&next, msg)
	return next, cmds
}

// step mutates m, which must already be private to the caller. Transitions
// that chain into a follow-up message call step again instead of going back
// through the runtime.
func step(m *model.Model, msg Msg) []Command {
	switch msg := msg.(type) {
	case NoopMsg:
		return nil
	case FocusPendingMsg:
		return []Command{focusCommand(msg)}
	case FocusEditMsg:
		return []Command{focusCommand(msg)}
	case FocusPaletteMsg:
		return []Command{focusCommand(msg)}
	case UpdatePendingMsg:
		m.PendingItem = msg.Text
		return nil
	case AddTodoMsg:
		m.Items = append(m.Items, model.Item{
			ID:   m.NextID,
			Text: strings.TrimSpace(m.PendingItem),
		})
		m.NextID++
		m.PendingItem = ""
		return nil
	case RemoveTodoMsg:
		i := mustIndex(m, msg.ID, msg)
		m.Items = append(m.Items[:i], m.Items[i+1:]...)
		if m.PendingEdit != nil && m.PendingEdit.ID == msg.ID {
			m.PendingEdit = nil
		}
		return nil
	case ToggleTodoMsg:
		i := mustIndex(m, msg.ID, msg)
		m.Items[i].IsComplete = !m.Items[i].IsComplete
		return nil
	case EditTodoMsg:
		i := mustIndex(m, msg.ID, msg)
		m.PendingEdit = &model.Edit{ID: msg.ID, Draft: m.Items[i].Text}
		return step(m, FocusEditMsg{})
	case UpdateEditMsg:
		edit := mustEdit(m, msg)
		edit.Draft = msg.Text
		return nil
	case SaveEditMsg:
		edit := mustEdit(m, msg)
		m.PendingEdit = nil
		text := strings.TrimSpace(edit.Draft)
		if text == "" {
			return step(m, RemoveTodoMsg{ID: edit.ID})
		}
		i := mustIndex(m, edit.ID, msg)
		m.Items[i].Text = text
		return nil
	case AbortEditMsg:
		m.PendingEdit = nil
		return nil
	case ClearCompletedMsg:
		kept := m.Items[:0]
		for _, item := range m.Items {
			if !item.IsComplete {
				kept = append(kept, item)
			}
		}
		m.Items = kept
		if m.PendingEdit != nil && m.IndexOf(m.PendingEdit.ID) < 0 {
			m.PendingEdit = nil
		}
		return nil
	case ToggleAllMsg:
		complete := !m.AllComplete()
		for i := range m.Items {
			m.Items[i].IsComplete = complete
		}
		return nil
	case ShowAllMsg:
		m.Filter = model.FilterAll
		return nil
	case ShowActiveMsg:
		m.Filter = model.FilterActive
		return nil
	case ShowCompletedMsg:
		m.Filter = model.FilterCompleted
		return nil
	case OpenPaletteMsg:
		m.Palette = model.Palette{Active: true}
		return step(m, FocusPaletteMsg{})
	case UpdatePaletteMsg:
		if !m.Palette.Active {
			return nil
		}
		m.Palette.Input = msg.Text
		return nil
	case ClosePaletteMsg:
		m.Palette = model.Palette{}
		return nil
	case RunPaletteMsg:
		return runPalette(m)
	case ClearStatusMsg:
		if m.Status.Seq == msg.Seq {
			m.Status = model.Status{Seq: m.Status.Seq}
		}
		return nil
	default:
		panic(fmt.Errorf("%w: unhandled message %T", ErrContractViolation, msg))
	}
}

func mustIndex(m *model.Model, id model.ItemID, msg Msg) int {
	i := m.IndexOf(id)
	if i < 0 {
		panic(fmt.Errorf("%w: %#v addresses unknown item %s", ErrContractViolation, msg, id))
	}
	return i
}

func mustEdit(m *model.Model, msg Msg) *model.Edit {
	if m.PendingEdit == nil {
		panic(fmt.Errorf("%w: %#v without a pending edit", ErrContractViolation, msg))
	}
	if m.IndexOf(m.PendingEdit.ID) < 0 {
		panic(fmt.Errorf("%w: pending edit addresses unknown item %s", ErrContractViolation, m.PendingEdit.ID))
	}
	return m.PendingEdit
}

// runPalette executes the typed command through the same transitions the
// view bindings use. Rows are numbered over the visible list.
func runPalette(m *model.Model) []Command {
	input := m.Palette.Input
	m.Palette = model.Palette{}

	var cmds []Command
	visible := m.Visible()
	row := func(args commands.TargetArgs) (model.Item, error) {
		if args.Row < 1 || args.Row > len(visible) {
			return model.Item{}, &commands.CommandError{
				Code:    commands.ErrCodeInvalidArgument,
				Message: fmt.Sprintf("no row %d (showing %d)", args.Row, len(visible)),
			}
		}
		return visible[args.Row-1], nil
	}
	focusPending := true

	res, err := func() (commands.Result, error) {
		cmd, err := commands.Parse(input)
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Execute(cmd, commands.Handlers{
			Add: func(a commands.AddArgs) (commands.Result, error) {
				saved := m.PendingItem
				m.PendingItem = a.Title
				cmds = append(cmds, step(m, AddTodoMsg{})...)
				m.PendingItem = saved
				return commands.Result{Message: fmt.Sprintf("added: %s", strings.TrimSpace(a.Title))}, nil
			},
			Toggle: func(a commands.TargetArgs) (commands.Result, error) {
				if a.Row == 0 {
					cmds = append(cmds, step(m, ToggleAllMsg{})...)
					return commands.Result{Message: "toggled all"}, nil
				}
				item, err := row(a)
				if err != nil {
					return commands.Result{}, err
				}
				cmds = append(cmds, step(m, ToggleTodoMsg{ID: item.ID})...)
				return commands.Result{Message: fmt.Sprintf("toggled: %s", item.Text)}, nil
			},
			Remove: func(a commands.TargetArgs) (commands.Result, error) {
				item, err := row(a)
				if err != nil {
					return commands.Result{}, err
				}
				cmds = append(cmds, step(m, RemoveTodoMsg{ID: item.ID})...)
				return commands.Result{Message: fmt.Sprintf("removed: %s", item.Text)}, nil
			},
			Edit: func(a commands.TargetArgs) (commands.Result, error) {
				item, err := row(a)
				if err != nil {
					return commands.Result{}, err
				}
				focusPending = false
				cmds = append(cmds, step(m, EditTodoMsg{ID: item.ID})...)
				return commands.Result{Message: fmt.Sprintf("editing: %s", item.Text)}, nil
			},
			Clear: func() (commands.Result, error) {
				n := m.CompletedCount()
				cmds = append(cmds, step(m, ClearCompletedMsg{})...)
				return commands.Result{Message: fmt.Sprintf("cleared %d completed", n)}, nil
			},
			Show: func(a commands.ShowArgs) (commands.Result, error) {
				cmds = append(cmds, step(m, showMsg(a.Filter))...)
				return commands.Result{Message: fmt.Sprintf("showing %s", strings.ToLower(a.Filter.Label()))}, nil
			},
		})
	}()

	seq := m.Status.Seq + 1
	if err != nil {
		m.Status = model.Status{Text: err.Error(), IsError: true, Seq: seq}
	} else {
		m.Status = model.Status{Text: res.Message, Seq: seq}
	}
	if focusPending {
		cmds = append(cmds, step(m, FocusPendingMsg{})...)
	}
	return append(cmds, clearStatusCommand(ClearStatusMsg{Seq: seq}, m.StatusTTL))
}

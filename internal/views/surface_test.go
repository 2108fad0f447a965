package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

type form struct {
	pending string
	checked bool
	items   []string
	editing bool
}

func (f form) tree() *Node[msg] {
	input := El[msg]("input").
		Class("new-todo").
		Flag("autofocus", true).
		Attr("value", f.pending).
		OnEvent("input", func(ev *Event) msg { return msg("input:" + ev.Value) }).
		OnEvent("keydown", func(ev *Event) msg { return msg("key:" + ev.Key) })
	box := El[msg]("input").
		Class("toggle").
		Attr("type", "checkbox").
		Flag("checked", f.checked).
		OnEvent("change", func(ev *Event) msg {
			if ev.Checked {
				return "checked"
			}
			return "unchecked"
		})
	list := El[msg]("ul")
	for _, item := range f.items {
		li := El[msg]("li").Attr("key", item)
		if f.editing && item == f.items[0] {
			li.Append(El[msg]("input").Class("edit").Attr("value", item).On("blur", "save"))
		} else {
			li.Append(El[msg]("label", Text[msg](item)).Attr("tabindex", "0").On("dblclick", msg("edit:"+item)))
		}
		list.Append(li)
	}
	links := El[msg]("div",
		El[msg]("a", Text[msg]("All")).Attr("href", "#/").OnEvent("click", func(ev *Event) msg {
			ev.PreventDefault()
			return "all"
		}),
		El[msg]("a", Text[msg]("Plain")).Attr("href", "#/plain"),
	)
	return El[msg]("div", input, box, list, links).
		OnEvent("keydown", func(ev *Event) msg { return msg("root:" + ev.Key) })
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestAttachFocusesAutofocus(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{}.tree())
	if n := s.Focused(); n == nil || !n.HasClass("new-todo") {
		t.Fatalf("expected new-todo focused, got %+v", n)
	}
}

func TestTypingFiresKeydownThenInput(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{}.tree())

	got := s.HandleKey(keyRunes("a"))
	if diff := cmp.Diff([]msg{"key:a", "root:a", "input:a"}, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	got = s.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]msg{"key:Enter", "root:Enter"}, got); diff != "" {
		t.Fatalf("enter mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchSyncsEditorValue(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{pending: "abc"}.tree())
	s.Patch(form{pending: ""}.tree())

	got := s.HandleKey(keyRunes("x"))
	if diff := cmp.Diff([]msg{"key:x", "root:x", "input:x"}, got); diff != "" {
		t.Fatalf("expected editor reset by patch (-want +got):\n%s", diff)
	}
}

func TestCheckboxActivationFiresChange(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{}.tree())
	if got := s.HandleKey(tea.KeyMsg{Type: tea.KeyTab}); len(got) != 0 {
		t.Fatalf("tab off new-todo should fire nothing, got %v", got)
	}

	got := s.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if diff := cmp.Diff([]msg{"root: ", "checked"}, got); diff != "" {
		t.Fatalf("change mismatch (-want +got):\n%s", diff)
	}
	s.Patch(form{checked: true}.tree())
	got = s.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]msg{"root:Enter", "unchecked"}, got); diff != "" {
		t.Fatalf("uncheck mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelActivationFallsBackToDblclick(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{items: []string{"a"}}.tree())
	s.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	s.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if n := s.Focused(); n == nil || n.Tag != "label" {
		t.Fatalf("expected label focused, got %+v", n)
	}

	got := s.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]msg{"root:Enter", "edit:a"}, got); diff != "" {
		t.Fatalf("activation mismatch (-want +got):\n%s", diff)
	}
}

func TestTabFiresBlurOnLeave(t *testing.T) {
	s := NewSurface[msg]()
	tree := form{items: []string{"a"}, editing: true}.tree()
	s.Attach(tree)
	if _, err := s.Focus(".edit"); err != nil {
		t.Fatalf("focus edit: %v", err)
	}

	got := s.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if diff := cmp.Diff([]msg{"save"}, got); diff != "" {
		t.Fatalf("blur mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftTabWrapsBackwards(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{}.tree())
	s.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if n := s.Focused(); n == nil || n.Tag != "a" || n.TextContent() != "Plain" {
		t.Fatalf("expected last link focused, got %+v", n)
	}
}

func TestLinkNavigationUnlessPrevented(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{}.tree())

	if _, err := s.Focus("a"); err != nil {
		t.Fatalf("focus link: %v", err)
	}
	got := s.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]msg{"root:Enter", "all"}, got); diff != "" {
		t.Fatalf("click mismatch (-want +got):\n%s", diff)
	}
	if s.Location() != "#/" {
		t.Fatalf("prevented link must not navigate, got %s", s.Location())
	}

	s.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	s.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if s.Location() != "#/plain" {
		t.Fatalf("expected navigation to #/plain, got %s", s.Location())
	}
}

func TestFocusUnknownSelector(t *testing.T) {
	s := NewSurface[msg]()
	if _, err := s.Focus(".new-todo"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch before attach, got %v", err)
	}
	s.Attach(form{}.tree())
	if _, err := s.Focus(".edit"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if n := s.Focused(); n == nil || !n.HasClass("new-todo") {
		t.Fatalf("failed focus must keep the current element")
	}
}

func TestPatchKeepsKeyedFocusAcrossReorder(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{items: []string{"a", "b"}}.tree())
	if _, err := s.Focus("label"); err != nil {
		t.Fatalf("focus label: %v", err)
	}

	s.Patch(form{items: []string{"b", "a"}}.tree())
	if n := s.Focused(); n == nil || n.TextContent() != "a" {
		t.Fatalf("expected focus to follow keyed row a, got %+v", n)
	}
}

func TestPatchFallsBackToAutofocusWithoutBlur(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{items: []string{"a"}, editing: true}.tree())
	if _, err := s.Focus(".edit"); err != nil {
		t.Fatalf("focus edit: %v", err)
	}

	s.Patch(form{items: []string{"a"}}.tree())
	if n := s.Focused(); n == nil || !n.HasClass("new-todo") {
		t.Fatalf("expected fallback to new-todo, got %+v", n)
	}
}

func TestViewPaintsTree(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{items: []string{"milk"}, checked: true}.tree())
	view := s.View()
	for _, want := range []string{"[x]", "milk", "All", "Plain"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestKeyName(t *testing.T) {
	cases := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, "Enter"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{tea.KeyMsg{Type: tea.KeyUp}, "ArrowUp"},
		{tea.KeyMsg{Type: tea.KeyCtrlK}, "ctrl+k"},
		{keyRunes("q"), "q"},
	}
	for _, tc := range cases {
		if got := KeyName(tc.key); got != tc.want {
			t.Fatalf("KeyName(%v) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestCtrlKLeavesInputValue(t *testing.T) {
	s := NewSurface[msg]()
	s.Attach(form{}.tree())
	s.HandleKey(keyRunes("abc"))
	s.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})

	got := s.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlK})
	if diff := cmp.Diff([]msg{"key:ctrl+k", "root:ctrl+k"}, got); diff != "" {
		t.Fatalf("ctrl+k mismatch (-want +got):\n%s", diff)
	}
}

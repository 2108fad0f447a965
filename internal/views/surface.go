package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Surface is the live terminal stand-in for a mounted view tree. It tracks
// which element holds focus, edits the focused text input and turns key
// presses into the messages bound on the tree.
type Surface[M any] struct {
	tree     *Node[M]
	focusID  string
	editor   textinput.Model
	location string
	width    int
}

func NewSurface[M any]() *Surface[M] {
	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 512
	editor.Width = 48
	editor.Cursor.SetMode(cursor.CursorStatic)
	// ctrl+k belongs to the tree's keydown bindings.
	editor.KeyMap.DeleteAfterCursor.SetEnabled(false)
	return &Surface[M]{editor: editor, location: "#/", width: 64}
}

// Attach mounts the initial tree and focuses its first autofocus element.
func (s *Surface[M]) Attach(tree *Node[M]) {
	s.tree = tree
	s.focusID = ""
	s.editor.Blur()
	s.focusAutofocus()
}

func (s *Surface[M]) focusAutofocus() {
	Walk(s.tree, func(n *Node[M], path []*Node[M]) bool {
		if s.focusID != "" {
			return false
		}
		if !n.IsText() && n.Has("autofocus") {
			s.setFocus(n, path)
			return false
		}
		return true
	})
}

// Patch replaces the mounted tree. Focus survives when an element with the same
// identity exists in next, otherwise it falls back to the autofocus element.
func (s *Surface[M]) Patch(next *Node[M]) {
	s.tree = next
	n, _ := s.lookup(s.focusID)
	if n == nil {
		s.focusID = ""
		s.editor.Blur()
		s.focusAutofocus()
		return
	}
	if isTextInput(n) {
		value, _ := n.Get("value")
		if value != s.editor.Value() {
			s.editor.SetValue(value)
			s.editor.CursorEnd()
		}
		placeholder, _ := n.Get("placeholder")
		s.editor.Placeholder = placeholder
	}
}

func (s *Surface[M]) Tree() *Node[M] { return s.tree }

func (s *Surface[M]) Focused() *Node[M] {
	n, _ := s.lookup(s.focusID)
	return n
}

// Location is the hash route last navigated to by an unprevented link activation.
func (s *Surface[M]) Location() string { return s.location }

func (s *Surface[M]) SetWidth(width int) {
	if width > 0 {
		s.width = width
	}
}

// Focus moves input focus to the first element matching selector. Messages
// produced by the blur of the previously focused element are returned.
func (s *Surface[M]) Focus(selector string) ([]M, error) {
	if s.tree == nil {
		return nil, fmt.Errorf("%w: %s (nothing mounted)", ErrNoMatch, selector)
	}
	target, err := Query(s.tree, selector)
	if err != nil {
		return nil, err
	}
	var found []*Node[M]
	Walk(s.tree, func(n *Node[M], path []*Node[M]) bool {
		if n == target {
			found = slices.Clone(path)
			return false
		}
		return true
	})
	return s.moveTo(target, found), nil
}

// HandleKey decodes a key press against the focused element and returns the
// resulting messages in dispatch order.
func (s *Surface[M]) HandleKey(k tea.KeyMsg) []M {
	if s.tree == nil {
		return nil
	}
	switch k.String() {
	case "tab":
		return s.cycle(1)
	case "shift+tab":
		return s.cycle(-1)
	}
	n, _ := s.lookup(s.focusID)
	if n == nil {
		s.cycle(1)
		return nil
	}

	out := s.dispatch(&Event{Name: "keydown", Key: KeyName(k)})
	switch {
	case isTextInput(n):
		before := s.editor.Value()
		s.editor, _ = s.editor.Update(k)
		if after := s.editor.Value(); after != before {
			out = append(out, s.dispatch(&Event{Name: "input", Value: after})...)
		}
	case isCheckbox(n):
		if isActivation(k) {
			out = append(out, s.dispatch(&Event{Name: "change", Checked: !n.Has("checked")})...)
		}
	default:
		if isActivation(k) {
			// Terminals have no double click; activation falls back to it.
			name := "click"
			if !n.Handles("click") && n.Handles("dblclick") {
				name = "dblclick"
			}
			out = append(out, s.dispatch(&Event{Name: name})...)
		}
	}
	return out
}

func (s *Surface[M]) dispatch(ev *Event) []M {
	target, path := s.lookup(s.focusID)
	if target == nil {
		return nil
	}
	out := target.Fire(ev)
	for i := len(path) - 1; i >= 0; i-- {
		out = append(out, path[i].Fire(ev)...)
	}
	if ev.Name == "click" && target.Tag == "a" && !ev.DefaultPrevented() {
		if href, ok := target.Get("href"); ok {
			s.location = href
		}
	}
	return out
}

func (s *Surface[M]) cycle(delta int) []M {
	type entry struct {
		node *Node[M]
		path []*Node[M]
	}
	var all []entry
	Walk(s.tree, func(n *Node[M], path []*Node[M]) bool {
		if isFocusable(n) {
			all = append(all, entry{node: n, path: slices.Clone(path)})
		}
		return true
	})
	if len(all) == 0 {
		return nil
	}
	idx := -1
	for i, e := range all {
		if identity(e.node, e.path) == s.focusID {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(all) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + delta + len(all)) % len(all)
	}
	return s.moveTo(all[idx].node, all[idx].path)
}

func (s *Surface[M]) moveTo(n *Node[M], path []*Node[M]) []M {
	id := identity(n, path)
	if id == s.focusID {
		return nil
	}
	var out []M
	if old, _ := s.lookup(s.focusID); old != nil {
		out = old.Fire(&Event{Name: "blur"})
	}
	s.setFocus(n, path)
	return out
}

func (s *Surface[M]) setFocus(n *Node[M], path []*Node[M]) {
	s.focusID = identity(n, path)
	if !isTextInput(n) {
		s.editor.Blur()
		return
	}
	value, _ := n.Get("value")
	placeholder, _ := n.Get("placeholder")
	s.editor.SetValue(value)
	s.editor.Placeholder = placeholder
	s.editor.CursorEnd()
	s.editor.Focus()
}

func (s *Surface[M]) lookup(id string) (*Node[M], []*Node[M]) {
	if id == "" || s.tree == nil {
		return nil, nil
	}
	var node *Node[M]
	var found []*Node[M]
	Walk(s.tree, func(n *Node[M], path []*Node[M]) bool {
		if node != nil {
			return false
		}
		if !n.IsText() && identity(n, path) == id {
			node = n
			found = slices.Clone(path)
			return false
		}
		return true
	})
	return node, found
}

// identity names an element by its position in the tree. Keyed elements use
// their key so reordering and class changes do not move focus.
func identity[M any](n *Node[M], path []*Node[M]) string {
	parts := make([]string, 0, len(path)+1)
	chain := append(slices.Clone(path), n)
	for i, node := range chain {
		var parent *Node[M]
		if i > 0 {
			parent = chain[i-1]
		}
		parts = append(parts, segment(node, parent))
	}
	return strings.Join(parts, "/")
}

func segment[M any](n, parent *Node[M]) string {
	if key, ok := n.Get("key"); ok {
		return n.Tag + "@" + key
	}
	id, _ := n.Get("id")
	nth := 0
	if parent != nil {
		for _, sib := range parent.Children {
			if sib == n {
				break
			}
			if sib.Tag == n.Tag {
				nth++
			}
		}
	}
	return fmt.Sprintf("%s#%s[%d]", n.Tag, id, nth)
}

func isFocusable[M any](n *Node[M]) bool {
	if n.IsText() || n.Has("disabled") {
		return false
	}
	switch n.Tag {
	case "input", "button", "a", "textarea":
		return true
	}
	return n.Has("tabindex")
}

func isTextInput[M any](n *Node[M]) bool {
	if n == nil || n.Tag != "input" {
		return false
	}
	t, _ := n.Get("type")
	return t == "" || t == "text"
}

func isCheckbox[M any](n *Node[M]) bool {
	if n == nil || n.Tag != "input" {
		return false
	}
	t, _ := n.Get("type")
	return t == "checkbox"
}

func isActivation(k tea.KeyMsg) bool {
	switch k.String() {
	case "enter", " ":
		return true
	}
	return false
}

// KeyName maps a terminal key to the key identity a keydown binding sees.
func KeyName(k tea.KeyMsg) string {
	switch k.Type {
	case tea.KeyEnter:
		return "Enter"
	case tea.KeyEscape:
		return "Escape"
	case tea.KeyTab:
		return "Tab"
	case tea.KeyBackspace:
		return "Backspace"
	case tea.KeyDelete:
		return "Delete"
	case tea.KeySpace:
		return " "
	case tea.KeyUp:
		return "ArrowUp"
	case tea.KeyDown:
		return "ArrowDown"
	case tea.KeyLeft:
		return "ArrowLeft"
	case tea.KeyRight:
		return "ArrowRight"
	}
	return k.String()
}

package views

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrNoMatch = errors.New("views: no element matches selector")

type Attr struct {
	Key   string
	Value string
}

// Event is the host payload handed to a binding. Key carries key identity for
// keydown, Value the target's value for input, Checked the new state for change.
type Event struct {
	Name    string
	Key     string
	Value   string
	Checked bool

	defaultPrevented bool
}

func (e *Event) PreventDefault() { e.defaultPrevented = true }

func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

type Binding[M any] struct {
	Event  string
	Handle func(*Event) M
}

// Node is one element of a declarative view tree. A node with an empty Tag is
// a text leaf.
type Node[M any] struct {
	Tag      string
	Text     string
	Attrs    []Attr
	Bindings []Binding[M]
	Children []*Node[M]
}

func El[M any](tag string, children ...*Node[M]) *Node[M] {
	n := &Node[M]{Tag: tag}
	return n.Append(children...)
}

func Text[M any](s string) *Node[M] {
	return &Node[M]{Text: s}
}

func (n *Node[M]) IsText() bool { return n.Tag == "" }

// Append adds children, skipping nil so conditional sections can be passed inline.
func (n *Node[M]) Append(children ...*Node[M]) *Node[M] {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func (n *Node[M]) Attr(key, value string) *Node[M] {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Flag sets a boolean attribute when on is true.
func (n *Node[M]) Flag(key string, on bool) *Node[M] {
	if !on {
		return n
	}
	return n.Attr(key, "")
}

func (n *Node[M]) Class(names ...string) *Node[M] {
	classes := n.Classes()
	for _, name := range names {
		for _, c := range strings.Fields(name) {
			if !slices.Contains(classes, c) {
				classes = append(classes, c)
			}
		}
	}
	if len(classes) == 0 {
		return n
	}
	return n.Attr("class", strings.Join(classes, " "))
}

func (n *Node[M]) On(event string, msg M) *Node[M] {
	return n.OnEvent(event, func(*Event) M { return msg })
}

func (n *Node[M]) OnEvent(event string, fn func(*Event) M) *Node[M] {
	n.Bindings = append(n.Bindings, Binding[M]{Event: event, Handle: fn})
	return n
}

func (n *Node[M]) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node[M]) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

func (n *Node[M]) Classes() []string {
	v, _ := n.Get("class")
	return strings.Fields(v)
}

func (n *Node[M]) HasClass(name string) bool {
	return slices.Contains(n.Classes(), name)
}

func (n *Node[M]) Handles(event string) bool {
	for _, b := range n.Bindings {
		if b.Event == event {
			return true
		}
	}
	return false
}

// Fire runs every binding of n registered for ev.Name, in declaration order.
func (n *Node[M]) Fire(ev *Event) []M {
	var out []M
	for _, b := range n.Bindings {
		if b.Event == ev.Name {
			out = append(out, b.Handle(ev))
		}
	}
	return out
}

// TextContent concatenates every text leaf under n.
func (n *Node[M]) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Walk visits n and its descendants depth first. Returning false from fn skips
// the children of the visited node.
func Walk[M any](n *Node[M], fn func(node *Node[M], path []*Node[M]) bool) {
	walk(n, nil, fn)
}

func walk[M any](n *Node[M], path []*Node[M], fn func(*Node[M], []*Node[M]) bool) {
	if n == nil {
		return
	}
	if !fn(n, path) {
		return
	}
	path = append(path, n)
	for _, c := range n.Children {
		walk(c, path, fn)
	}
}

// Selector is a compound selector such as "input.edit", ".new-todo" or "#toggle-all".
type Selector struct {
	Tag     string
	ID      string
	Classes []string
}

func ParseSelector(raw string) (Selector, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, " >+~[]") {
		return Selector{}, fmt.Errorf("views: unsupported selector %q", raw)
	}
	var sel Selector
	var kind byte
	start := 0
	flush := func(end int) error {
		part := s[start:end]
		switch kind {
		case 0:
			sel.Tag = part
		case '.':
			if part == "" {
				return fmt.Errorf("views: empty class in selector %q", raw)
			}
			sel.Classes = append(sel.Classes, part)
		case '#':
			if part == "" {
				return fmt.Errorf("views: empty id in selector %q", raw)
			}
			sel.ID = part
		}
		return nil
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == '#' {
			if err := flush(i); err != nil {
				return Selector{}, err
			}
			kind = s[i]
			start = i + 1
		}
	}
	if err := flush(len(s)); err != nil {
		return Selector{}, err
	}
	return sel, nil
}

// MatchSelector reports whether element n satisfies every part of sel.
func MatchSelector[M any](sel Selector, n *Node[M]) bool {
	if n == nil || n.IsText() {
		return false
	}
	if sel.Tag == "" && sel.ID == "" && len(sel.Classes) == 0 {
		return false
	}
	if sel.Tag != "" && n.Tag != sel.Tag {
		return false
	}
	if sel.ID != "" {
		if id, _ := n.Get("id"); id != sel.ID {
			return false
		}
	}
	for _, c := range sel.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return true
}

// Query returns the first element under root matching selector, in document order.
func Query[M any](root *Node[M], selector string) (*Node[M], error) {
	all, err := QueryAll(root, selector)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return all[0], nil
}

func QueryAll[M any](root *Node[M], selector string) ([]*Node[M], error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	var out []*Node[M]
	Walk(root, func(n *Node[M], _ []*Node[M]) bool {
		if MatchSelector(sel, n) {
			out = append(out, n)
		}
		return true
	})
	return out, nil
}

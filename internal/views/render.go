package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("168"))
	focusStyle     = lipgloss.NewStyle().Reverse(true)
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	selectedStyle  = lipgloss.NewStyle().Underline(true).Bold(true)
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var inlineTags = map[string]bool{
	"a": true, "button": true, "em": true, "input": true, "label": true, "span": true, "strong": true,
}

// View paints the mounted tree as terminal text.
func (s *Surface[M]) View() string {
	if s.tree == nil {
		return ""
	}
	focused := s.Focused()
	return s.paint(s.tree, focused, false)
}

func (s *Surface[M]) paint(n *Node[M], focused *Node[M], done bool) string {
	if n.IsText() {
		return n.Text
	}
	var out string
	switch n.Tag {
	case "input":
		out = s.paintInput(n, n == focused)
	case "button":
		if n.HasClass("destroy") {
			out = "×"
		} else {
			out = "[" + n.TextContent() + "]"
		}
	case "h1":
		out = titleStyle.Render(n.TextContent())
	default:
		out = s.paintChildren(n, focused, done || n.HasClass("completed"))
	}

	switch {
	case n == focused && !isTextInput(n):
		out = focusStyle.Render(out)
	case n.Tag == "a" && n.HasClass("selected"):
		out = selectedStyle.Render(out)
	case n.Tag == "label" && done:
		out = completedStyle.Render(out)
	case n.HasClass("status"):
		if n.HasClass("error") {
			out = errorStyle.Render(out)
		} else {
			out = statusStyle.Render(out)
		}
	case n.HasClass("info"):
		out = faintStyle.Render(out)
	case n.HasClass("todoapp"):
		out = panelStyle.Width(s.width).Render(out)
	}
	return out
}

func (s *Surface[M]) paintInput(n *Node[M], focused bool) string {
	if isCheckbox(n) {
		if n.Has("checked") {
			return "[x]"
		}
		return "[ ]"
	}
	prefix := "  "
	if focused {
		prefix = "❯ "
	}
	if focused {
		return prefix + s.editor.View()
	}
	if value, _ := n.Get("value"); value != "" {
		return prefix + value
	}
	placeholder, _ := n.Get("placeholder")
	return prefix + faintStyle.Render(placeholder)
}

// paintChildren lays inline children out on one line and block children on
// their own lines.
func (s *Surface[M]) paintChildren(n *Node[M], focused *Node[M], done bool) string {
	if inlineTags[n.Tag] {
		var b strings.Builder
		for _, c := range n.Children {
			b.WriteString(s.paint(c, focused, done))
		}
		return b.String()
	}
	sep := " "
	if n.HasClass("filters") {
		sep = "  "
	}
	var lines []string
	var line []string
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, strings.Join(line, sep))
			line = nil
		}
	}
	for _, c := range n.Children {
		piece := s.paint(c, focused, done)
		if c.IsText() || inlineTags[c.Tag] || n.HasClass("filters") {
			if strings.TrimSpace(piece) != "" {
				line = append(line, piece)
			}
			continue
		}
		flush()
		if piece != "" {
			lines = append(lines, piece)
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func RenderPanel(body string, width int) string {
	return panelStyle.Width(width).Render(body)
}

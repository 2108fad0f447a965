package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todomvc/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type helpPanel struct {
	model help.Model
	keys  helpKeyMap
}

const helpMarkdown = `## todos

Every row is addressed by the number shown in front of it, counted over the
rows the current filter shows.

| palette command | effect |
|---|---|
| ` + "`add <text>`" + ` | add a todo |
| ` + "`toggle [n]`" + ` | toggle row *n*, or every row |
| ` + "`rm <n>`" + ` | remove row *n* |
| ` + "`edit <n>`" + ` | edit row *n* |
| ` + "`clear`" + ` | clear completed |
| ` + "`show all\\|active\\|completed`" + ` | change the filter |
`

func newHelpPanel() helpPanel {
	navigation := toBindings(navigationBindings())
	global := toBindings(globalBindings())
	h := help.New()
	h.ShowAll = true
	return helpPanel{
		model: h,
		keys: helpKeyMap{
			short: append(append([]key.Binding{}, navigation...), global...),
			full:  [][]key.Binding{navigation, global},
		},
	}
}

func (p helpPanel) View(width int) string {
	p.model.Width = width
	body := views.RenderMarkdown(helpMarkdown, width-4) + "\n\n" + p.model.View(p.keys)
	return views.RenderPanel(body, width-4)
}

func navigationBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "tab", Action: "next control"},
		{Key: "shift+tab", Action: "previous control"},
		{Key: "enter", Action: "add / save / activate"},
		{Key: "space", Action: "toggle checkbox"},
		{Key: "esc", Action: "cancel edit or palette"},
	}
}

func globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "ctrl+k", Action: "command palette"},
		{Key: "f1", Action: "toggle help"},
		{Key: "ctrl+c", Action: "quit"},
	}
}

func toBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

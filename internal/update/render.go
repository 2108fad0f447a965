package update

import (
	"strconv"

	"github.com/sandeepkv93/todomvc/internal/model"
	"github.com/sandeepkv93/todomvc/internal/views"
)

type node = views.Node[Msg]

func el(tag string, children ...*node) *node { return views.El[Msg](tag, children...) }

func text(s string) *node { return views.Text[Msg](s) }

const (
	newTodoPlaceholder = "What needs to be done?"
	palettePlaceholder = "add <todo> | toggle [n] | rm <n> | edit <n> | clear | show all|active|completed"
)

// Render projects m into a view tree. It reads m only.
func Render(m model.Model) *node {
	app := el("section",
		renderHeader(m),
		renderMain(m),
		renderFooter(m),
		renderPalette(m),
		renderStatus(m),
	).Class("todoapp")

	return el("div", app, renderInfo()).
		Class("app").
		OnEvent("keydown", func(ev *views.Event) Msg {
			if ev.Key == "ctrl+k" {
				return OpenPaletteMsg{}
			}
			return NoopMsg{}
		})
}

func renderHeader(m model.Model) *node {
	title := m.Title
	if title == "" {
		title = model.DefaultTitle
	}
	input := el("input").
		Class("new-todo").
		Attr("placeholder", newTodoPlaceholder).
		Flag("autofocus", true).
		Attr("value", m.PendingItem).
		OnEvent("input", func(ev *views.Event) Msg { return UpdatePendingMsg{Text: ev.Value} }).
		OnEvent("keydown", func(ev *views.Event) Msg {
			if ev.Key == "Enter" {
				return AddTodoMsg{}
			}
			return NoopMsg{}
		})
	return el("header", el("h1", text(title)), input).Class("header")
}

func renderMain(m model.Model) *node {
	if len(m.Items) == 0 {
		return nil
	}
	toggleAll := el("input").
		Attr("id", "toggle-all").
		Class("toggle-all").
		Attr("type", "checkbox").
		Flag("checked", m.AllComplete()).
		On("change", ToggleAllMsg{})
	label := el("label", text("Mark all as complete")).Attr("for", "toggle-all")

	list := el("ul").Class("todo-list")
	for i, item := range m.Visible() {
		list.Append(renderItem(m, i+1, item))
	}
	return el("section", toggleAll, label, list).Class("main")
}

func renderItem(m model.Model, row int, item model.Item) *node {
	li := el("li").Attr("key", item.ID.String())
	if item.IsComplete {
		li.Class("completed")
	}
	if m.IsEditing(item.ID) {
		edit := el("input").
			Class("edit").
			Attr("value", m.PendingEdit.Draft).
			OnEvent("input", func(ev *views.Event) Msg { return UpdateEditMsg{Text: ev.Value} }).
			On("blur", SaveEditMsg{}).
			OnEvent("keydown", func(ev *views.Event) Msg {
				switch ev.Key {
				case "Enter":
					return SaveEditMsg{}
				case "Escape":
					return AbortEditMsg{}
				}
				return NoopMsg{}
			})
		return li.Class("editing").Append(edit)
	}

	toggle := el("input").
		Class("toggle").
		Attr("type", "checkbox").
		Flag("checked", item.IsComplete).
		On("change", ToggleTodoMsg{ID: item.ID})
	label := el("label", text(item.Text)).
		Attr("tabindex", "0").
		On("dblclick", EditTodoMsg{ID: item.ID})
	destroy := el("button").Class("destroy").On("click", RemoveTodoMsg{ID: item.ID})
	number := el("span", text(strconv.Itoa(row)+".")).Class("row-number")
	return li.Append(el("div", number, toggle, label, destroy).Class("view"))
}

func renderFooter(m model.Model) *node {
	if len(m.Items) == 0 {
		return nil
	}
	left := m.ActiveCount()
	phrase := " items left"
	if left == 1 {
		phrase = " item left"
	}
	count := el("span", el("strong", text(strconv.Itoa(left))), text(phrase)).Class("todo-count")

	filters := el("ul").Class("filters")
	for _, f := range model.Filters {
		msg := showMsg(f)
		link := el("a", text(f.Label())).
			Attr("href", f.Href()).
			OnEvent("click", func(ev *views.Event) Msg {
				ev.PreventDefault()
				return msg
			})
		if m.Filter == f {
			link.Class("selected")
		}
		filters.Append(el("li", link))
	}

	footer := el("footer", count, filters).Class("footer")
	if m.CompletedCount() > 0 {
		footer.Append(el("button", text("Clear completed")).
			Class("clear-completed").
			On("click", ClearCompletedMsg{}))
	}
	return footer
}

func renderPalette(m model.Model) *node {
	if !m.Palette.Active {
		return nil
	}
	input := el("input").
		Class("palette-input").
		Attr("placeholder", palettePlaceholder).
		Attr("value", m.Palette.Input).
		OnEvent("input", func(ev *views.Event) Msg { return UpdatePaletteMsg{Text: ev.Value} }).
		On("blur", ClosePaletteMsg{}).
		OnEvent("keydown", func(ev *views.Event) Msg {
			switch ev.Key {
			case "Enter":
				return RunPaletteMsg{}
			case "Escape":
				return ClosePaletteMsg{}
			}
			return NoopMsg{}
		})
	return el("div", el("span", text("/")), input).Class("palette")
}

func renderStatus(m model.Model) *node {
	if m.Status.Text == "" {
		return nil
	}
	p := el("p", text(m.Status.Text)).Class("status")
	if m.Status.IsError {
		p.Class("error")
	}
	return p
}

func renderInfo() *node {
	return el("footer",
		el("p", text("enter adds · tab moves focus · space toggles · enter on a label edits")),
		el("p", text("esc cancels an edit · ctrl+k command palette · f1 help · ctrl+c quits")),
	).Class("info")
}

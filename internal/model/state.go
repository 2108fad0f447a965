package model

import (
	"slices"
	"time"
)

const DefaultTitle = "todos"

type Edit struct {
	ID    ItemID
	Draft string
}

type Palette struct {
	Active bool
	Input  string
}

type Status struct {
	Text    string
	IsError bool
	Seq     int
}

type Model struct {
	PendingItem string
	Items       []Item
	PendingEdit *Edit
	Filter      Filter
	NextID      ItemID
	Palette     Palette
	Status      Status
	Title       string
	StatusTTL   time.Duration
}

func New() Model {
	return Model{
		Filter:    FilterAll,
		NextID:    1,
		Title:     DefaultTitle,
		StatusTTL: 3 * time.Second,
	}
}

// Clone returns a copy that shares no mutable state with m.
func (m Model) Clone() Model {
	out := m
	out.Items = slices.Clone(m.Items)
	if m.PendingEdit != nil {
		edit := *m.PendingEdit
		out.PendingEdit = &edit
	}
	return out
}

func (m Model) IndexOf(id ItemID) int {
	return slices.IndexFunc(m.Items, func(it Item) bool { return it.ID == id })
}

func (m Model) Item(id ItemID) (Item, bool) {
	i := m.IndexOf(id)
	if i < 0 {
		return Item{}, false
	}
	return m.Items[i], true
}

// Visible returns the items the current filter lets through, in order.
func (m Model) Visible() []Item {
	out := make([]Item, 0, len(m.Items))
	for _, item := range m.Items {
		if m.Filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

func (m Model) AllComplete() bool {
	for _, item := range m.Items {
		if !item.IsComplete {
			return false
		}
	}
	return true
}

func (m Model) ActiveCount() int {
	n := 0
	for _, item := range m.Items {
		if !item.IsComplete {
			n++
		}
	}
	return n
}

func (m Model) CompletedCount() int {
	return len(m.Items) - m.ActiveCount()
}

func (m Model) IsEditing(id ItemID) bool {
	return m.PendingEdit != nil && m.PendingEdit.ID == id
}

package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilter = errors.New("model: invalid filter")

type ItemID uint64

func (id ItemID) String() string {
	return fmt.Sprintf("todo-%d", uint64(id))
}

type Item struct {
	ID         ItemID
	Text       string
	IsComplete bool
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Matches reports whether item is visible under f.
func (f Filter) Matches(item Item) bool {
	switch f {
	case FilterActive:
		return !item.IsComplete
	case FilterCompleted:
		return item.IsComplete
	default:
		return true
	}
}

// Href is the hash route the filter link points at.
func (f Filter) Href() string {
	switch f {
	case FilterActive:
		return "#/active"
	case FilterCompleted:
		return "#/completed"
	default:
		return "#/"
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func ParseFilter(raw string) (Filter, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.TrimPrefix(v, "#/")
	switch v {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
}

var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

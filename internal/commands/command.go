package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todomvc/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeToggle Type = "toggle"
	TypeRemove Type = "remove"
	TypeEdit   Type = "edit"
	TypeClear  Type = "clear"
	TypeShow   Type = "show"
)

var aliases = map[string]Type{
	"new":    TypeAdd,
	"rm":     TypeRemove,
	"delete": TypeRemove,
	"done":   TypeToggle,
	"filter": TypeShow,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// TargetArgs addresses a row by its 1-based position in the visible list.
// Row 0 means "every row" and is only produced for toggle.
type TargetArgs struct {
	Row int
}

type ShowArgs struct {
	Filter model.Filter
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Show   *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := Type(strings.ToLower(parts[0]))
	if alias, ok := aliases[string(head)]; ok {
		head = alias
	}
	args := parts[1:]

	switch head {
	case TypeAdd:
		return parseAdd(input, raw, args)
	case TypeToggle:
		return parseToggle(input, args)
	case TypeRemove, TypeEdit:
		return parseTarget(input, head, args)
	case TypeClear:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear takes no arguments"}
		}
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", parts[0])}
	}
}

func parseAdd(input, raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	// Keep the title's inner spacing as typed.
	title := strings.TrimSpace(raw[len(strings.Fields(raw)[0]):])
	return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Title: title}}, nil
}

func parseToggle(input string, args []string) (Command, error) {
	if len(args) == 0 || strings.EqualFold(args[0], "all") {
		if len(args) > 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle takes one row number"}
		}
		return Command{Type: TypeToggle, Raw: input, Target: &TargetArgs{Row: 0}}, nil
	}
	return parseTarget(input, TypeToggle, args)
}

func parseTarget(input string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one row number", t)}
	}
	row, err := strconv.Atoi(args[0])
	if err != nil || row < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row: %s", args[0])}
	}
	return Command{Type: t, Raw: input, Target: &TargetArgs{Row: row}}, nil
}

func parseShow(input string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires all, active or completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		if errors.Is(err, model.ErrInvalidFilter) {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", args[0])}
		}
		return Command{}, err
	}
	return Command{Type: TypeShow, Raw: input, Show: &ShowArgs{Filter: f}}, nil
}

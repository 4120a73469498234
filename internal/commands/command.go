package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskboard/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeSave   Type = "save"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
	TypeFilter Type = "filter"
	TypeCancel Type = "cancel"
)

var aliases = map[string]Type{
	"rm":     TypeDelete,
	"del":    TypeDelete,
	"toggle": TypeDone,
	"show":   TypeFilter,
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

// categoryPrefix marks an inline category in add, e.g. "add pay rent cat:personal".
const categoryPrefix = "cat:"

type AddArgs struct {
	Title    string
	Category string
}

type TargetArgs struct {
	ID int64
}

type FilterArgs struct {
	Selector string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Filter *FilterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
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
		return parseAdd(input, args)
	case TypeEdit, TypeDone, TypeDelete:
		return parseTarget(input, head, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSave, TypeCancel:
		return Command{Type: head, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", parts[0])}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	category := model.DefaultCategory().Name
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), categoryPrefix) {
			name, ok := model.CanonicalCategory(arg[len(categoryPrefix):])
			if !ok {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", arg[len(categoryPrefix):])}
			}
			category = name
			continue
		}
		words = append(words, arg)
	}
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Category: category}}, nil
}

func parseTarget(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", t)}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	return Command{Type: t, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires All or a category"}
	}
	selector, ok := model.CanonicalFilter(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", args[0])}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Selector: selector}}, nil
}

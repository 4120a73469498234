package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Edit   func(TargetArgs) (Result, error)
	Save   func() (Result, error)
	Done   func(TargetArgs) (Result, error)
	Delete func(TargetArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Cancel func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Add == nil {
			return Result{}, noPayload(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Target == nil {
			return Result{}, noPayload(cmd.Type)
		}
		return handlers.Edit(*cmd.Target)
	case TypeSave:
		if handlers.Save == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Save()
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Target == nil {
			return Result{}, noPayload(cmd.Type)
		}
		return handlers.Done(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Target == nil {
			return Result{}, noPayload(cmd.Type)
		}
		return handlers.Delete(*cmd.Target)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Filter == nil {
			return Result{}, noPayload(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeCancel:
		if handlers.Cancel == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Cancel()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func noPayload(t Type) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s command has no arguments", t)}
}

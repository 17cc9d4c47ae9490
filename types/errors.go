package types

import (
	"errors"
	"fmt"
)

type Kind int

const (
	SyntaxError Kind = iota
	NameError
	TypeError
	BindingError
	UserError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case NameError:
		return "name error"
	case TypeError:
		return "type error"
	case BindingError:
		return "binding error"
	case UserError:
		return "exception"
	}
	return "error"
}

// ErrUnexpectedEOF marks input that ended inside an unfinished form.
var ErrUnexpectedEOF = errors.New("unexpected EOF")

// Error is every error raised by the reader or evaluator. Value is set for
// errors raised with Throw.
type Error struct {
	Kind  Kind
	Msg   string
	Value Data
	Err   error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// UnexpectedEOF returns a SyntaxError matching ErrUnexpectedEOF.
func UnexpectedEOF(format string, args ...interface{}) error {
	return &Error{Kind: SyntaxError, Msg: fmt.Sprintf(format, args...), Err: ErrUnexpectedEOF}
}

// Throw raises val as a UserError.
func Throw(val Data) error {
	msg := "thrown " + TypeName(val)
	if s, ok := val.(DString); ok {
		msg = string(s)
	}
	return &Error{Kind: UserError, Msg: msg, Value: val}
}

// KindOf returns the kind of err, or false when err did not come from the
// interpreter.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Payload is the value a catch* clause binds for err.
func Payload(err error) Data {
	var e *Error
	if errors.As(err, &e) && e.Value != nil {
		return e.Value
	}
	return DString(err.Error())
}

package vm

import "fmt"

// ErrorKind is the error taxonomy spec §7 defines. Grounded on the
// teacher's errors.ErrorType (errors/errors.go: SyntaxError/LexicalError/
// SemanticError) — same "typed classification wrapping a message and a
// position" shape, keyed here to a bytecode cursor rather than a lexer
// position since ABC decoding (and source positions) is out of scope.
type ErrorKind byte

const (
	DecodeError ErrorKind = iota
	ResolutionError
	TypeError
	ReferenceError
	ArityError
	HostError
)

func (k ErrorKind) String() string {
	switch k {
	case DecodeError:
		return "DecodeError"
	case ResolutionError:
		return "ResolutionError"
	case TypeError:
		return "TypeError"
	case ReferenceError:
		return "ReferenceError"
	case ArityError:
		return "ArityError"
	case HostError:
		return "HostError"
	default:
		return "Error"
	}
}

// VMError is the concrete error type raised by VM operations, carrying
// the bytecode offset (IP) the failure occurred at when known.
type VMError struct {
	Kind    ErrorKind
	Message string
	IP      int
	wrapped error
}

func (e *VMError) Error() string {
	if e.IP >= 0 {
		return fmt.Sprintf("%s at ip=%d: %s", e.Kind, e.IP, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *VMError) Unwrap() error { return e.wrapped }

// NewError builds a VMError with no associated bytecode offset.
func NewError(kind ErrorKind, format string, args ...interface{}) *VMError {
	return &VMError{Kind: kind, Message: fmt.Sprintf(format, args...), IP: -1}
}

// NewErrorAt builds a VMError tagged with the instruction cursor it
// occurred at, the way vm.go's decorateError annotates dispatch failures
// with ip/opcode context in the teacher.
func NewErrorAt(kind ErrorKind, ip int, format string, args ...interface{}) *VMError {
	return &VMError{Kind: kind, Message: fmt.Sprintf(format, args...), IP: ip}
}

// Wrap annotates an existing error with a taxonomy kind and bytecode
// offset while preserving it for errors.Is/errors.As via Unwrap.
func Wrap(kind ErrorKind, ip int, err error) *VMError {
	return &VMError{Kind: kind, Message: err.Error(), IP: ip, wrapped: err}
}

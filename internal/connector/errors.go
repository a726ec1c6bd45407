package connector

import "fmt"

// Kind classifies why a connection could not be set up.
type Kind int

const (
	SocketCreate Kind = iota + 1
	InvalidAddress
	ConnectFailed
)

// Error returns the console message for the kind, so a Kind can be used as
// an errors.Is target.
func (k Kind) Error() string {
	switch k {
	case SocketCreate:
		return "Socket creation error"
	case InvalidAddress:
		return "Invalid address"
	case ConnectFailed:
		return "Connection failed"
	default:
		return fmt.Sprintf("unknown connector failure %d", int(k))
	}
}

type Error struct {
	Kind Kind
	Addr string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Error(), e.Addr, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Addr)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newError(kind Kind, addr string, err error) *Error {
	return &Error{Kind: kind, Addr: addr, Err: err}
}

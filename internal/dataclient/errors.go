package dataclient

import (
	"errors"
	"fmt"
)

// ConnectivityMessage is shown for every transport failure.
const ConnectivityMessage = "Unable to connect to the API. Please check your connection and try again."

// Kind distinguishes failures where no response arrived from failures the
// backend reported.
type Kind int

const (
	// KindTransport means the request could not complete.
	KindTransport Kind = iota + 1
	// KindApplication means a response arrived without success:true.
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Failure is the single error type returned by every Client operation.
// Message is always suitable for display.
type Failure struct {
	Op      Op
	Kind    Kind
	Message string
	Status  int   // HTTP status, 0 for transport failures
	Err     error // underlying cause, may be nil
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s failure: %s: %v", f.Op, f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s failure: %s", f.Op, f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// MessageOf returns the display message carried by err, or fallback when
// err is not a Failure or carries no message.
func MessageOf(err error, fallback string) string {
	if f, ok := AsFailure(err); ok && f.Message != "" {
		return f.Message
	}
	return fallback
}

func transportFailure(op Op, err error) *Failure {
	return &Failure{Op: op, Kind: KindTransport, Message: ConnectivityMessage, Err: err}
}

// applicationFailure prefers the server's message and falls back to the
// operation's generic message.
func applicationFailure(op Op, status int, serverMsg string, err error) *Failure {
	msg := serverMsg
	if msg == "" {
		msg = op.GenericMessage()
	}
	return &Failure{Op: op, Kind: KindApplication, Message: msg, Status: status, Err: err}
}

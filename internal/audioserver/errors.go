package audioserver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnect matches any failure to establish or ready the session.
	ErrConnect = errors.New("can't connect to audio server")

	// ErrLoopTerminated matches any call aborted because the event loop
	// stopped before the request completed.
	ErrLoopTerminated = errors.New("audio server event loop terminated")
)

// ConnectError reports a session that never became ready.
type ConnectError struct {
	Server string
	Err    error
}

func (e *ConnectError) Error() string {
	target := "audio server"
	if strings.TrimSpace(e.Server) != "" {
		target = fmt.Sprintf("audio server %q", e.Server)
	}
	if e.Err == nil {
		return "can't connect to " + target
	}
	return fmt.Sprintf("can't connect to %s: %v", target, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

func (e *ConnectError) Is(target error) bool { return target == ErrConnect }

// LoopError reports a request that was cut off by loop termination.
type LoopError struct {
	Err error
}

func (e *LoopError) Error() string {
	if e.Err == nil {
		return ErrLoopTerminated.Error()
	}
	return fmt.Sprintf("%s: %v", ErrLoopTerminated, e.Err)
}

func (e *LoopError) Unwrap() error { return e.Err }

func (e *LoopError) Is(target error) bool { return target == ErrLoopTerminated }

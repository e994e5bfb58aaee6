// Package audioserver turns the callback-completed request protocol of a
// PulseAudio server into ordered, blocking calls.
//
// Every request is submitted together with a completion token (Operation).
// The caller then blocks in RunBlocking until the token resolves or the
// event loop that would resolve it terminates. Only one request is ever in
// flight, so no state is shared between calls once RunBlocking returns.
package audioserver

import (
	"context"
	"sync"
)

// OpState is the lifecycle of a pending operation.
type OpState int32

const (
	OpRunning OpState = iota
	OpSucceeded
	OpFailed
)

func (s OpState) String() string {
	switch s {
	case OpRunning:
		return "running"
	case OpSucceeded:
		return "succeeded"
	case OpFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Operation is the completion token of one in-flight request. It is
// resolved at most once, by Succeed or Fail, from whatever goroutine
// delivers the server's reply.
type Operation[T any] struct {
	once  sync.Once
	done  chan struct{}
	state OpState
	value T
}

func newOperation[T any]() *Operation[T] {
	return &Operation[T]{done: make(chan struct{})}
}

// Succeed resolves the operation with the reply value.
func (o *Operation[T]) Succeed(v T) { o.resolve(OpSucceeded, v) }

// Fail resolves the operation as rejected by the server. The value is still
// handed to the caller; it encodes the logical failure.
func (o *Operation[T]) Fail(v T) { o.resolve(OpFailed, v) }

func (o *Operation[T]) resolve(st OpState, v T) {
	o.once.Do(func() {
		o.value = v
		o.state = st
		close(o.done)
	})
}

// State reports the current state without blocking.
func (o *Operation[T]) State() OpState {
	select {
	case <-o.done:
		return o.state
	default:
		return OpRunning
	}
}

// Loop is the event source that resolves operations. Done is closed when
// the loop has terminated, after which Err explains why.
type Loop interface {
	Done() <-chan struct{}
	Err() error
}

// Request submits one asynchronous call. It must not block; the reply is
// delivered later through op.
type Request[T any] func(op *Operation[T])

// RunBlocking submits req and waits until its operation resolves or loop
// terminates.
//
// A resolved operation always returns its value with a nil error, including
// OpFailed: server-side rejections are encoded in the value. Loop termination
// and context cancellation return a *LoopError and no partial value.
func RunBlocking[T any](ctx context.Context, loop Loop, req Request[T]) (T, error) {
	var zero T
	select {
	case <-loop.Done():
		return zero, &LoopError{Err: loop.Err()}
	default:
	}

	op := newOperation[T]()
	req(op)

	select {
	case <-op.done:
		return op.value, nil
	case <-loop.Done():
		// The reply may have landed right before the loop went away.
		if op.State() != OpRunning {
			return op.value, nil
		}
		return zero, &LoopError{Err: loop.Err()}
	case <-ctx.Done():
		return zero, &LoopError{Err: ctx.Err()}
	}
}

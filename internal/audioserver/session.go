package audioserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

// Transport is the raw request surface of an audio server connection.
// *pulse.Client satisfies it.
type Transport interface {
	RawRequest(req proto.RequestArgs, rpl proto.Reply) error
	Close()
}

// Config selects the server and how the client announces itself.
type Config struct {
	// Server is a PulseAudio server string. Empty means the environment
	// default ($PULSE_SERVER, then the user's runtime socket).
	Server  string
	AppName string
}

// Dialer opens a transport. It may block.
type Dialer func(cfg Config) (Transport, error)

// DialPulse connects to a PulseAudio (or pipewire-pulse) server.
func DialPulse(cfg Config) (Transport, error) {
	opts := []pulse.ClientOption{pulse.ClientApplicationName(cfg.AppName)}
	if cfg.Server != "" {
		opts = append(opts, pulse.ClientServerString(cfg.Server))
	}
	c, err := pulse.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// State is the connection state of a Session.
type State int

const (
	StateUnconnected State = iota
	StateConnecting
	StateReady
	StateFailed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// PortInfo is one physical output of a sink.
type PortInfo struct {
	Name        string
	Description string
}

// SinkInfo is one sink as reported by the server. Fields the server left
// empty stay empty here.
type SinkInfo struct {
	Name           string
	Description    string
	ActivePortName string
	Ports          []PortInfo
}

// Session is a connected audio server client. It is the Loop that resolves
// the operations of its own requests: a transport failure terminates it and
// every pending or later call returns ErrLoopTerminated.
type Session struct {
	t Transport

	mu    sync.Mutex
	state State
	err   error
	done  chan struct{}
	once  sync.Once
}

func newSession() *Session {
	return &Session{done: make(chan struct{})}
}

// Connect dials the server and blocks until the session is ready or has
// failed. There is no retry.
func Connect(ctx context.Context, cfg Config, dial Dialer) (*Session, error) {
	if dial == nil {
		dial = DialPulse
	}
	s := newSession()
	s.setState(StateConnecting)

	_, err := RunBlocking(ctx, s, func(op *Operation[Transport]) {
		go func() {
			t, err := dial(cfg)
			if err != nil {
				s.stop(StateFailed, err)
				return
			}
			if s.adopt(t) {
				op.Succeed(t)
			}
		}()
	})
	if err != nil {
		s.stop(StateTerminated, err)
		s.release()
		cause := err
		var le *LoopError
		if errors.As(err, &le) && le.Err != nil {
			cause = le.Err
		}
		return nil, &ConnectError{Server: cfg.Server, Err: cause}
	}

	s.mu.Lock()
	s.state = StateReady
	s.mu.Unlock()
	slog.Debug("audio server session ready", "server", cfg.Server)
	return s, nil
}

// Done implements Loop.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err implements Loop.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State returns the current connection state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close terminates the loop and releases the transport.
func (s *Session) Close() {
	s.stop(StateTerminated, nil)
	s.release()
}

// adopt hands a freshly dialled transport to the session. A session that
// was already terminated closes it instead and reports false.
func (s *Session) adopt(t Transport) bool {
	s.mu.Lock()
	if s.state == StateTerminated {
		s.mu.Unlock()
		t.Close()
		return false
	}
	s.t = t
	s.mu.Unlock()
	return true
}

func (s *Session) release() {
	s.mu.Lock()
	t := s.t
	s.t = nil
	s.mu.Unlock()
	if t != nil {
		t.Close()
	}
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) stop(st State, err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.state = st
		s.err = err
		s.mu.Unlock()
		close(s.done)
	})
}

func (s *Session) transport() Transport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

// call issues req on the transport and blocks for the reply. A protocol
// error reply resolves the operation as failed; anything else that goes
// wrong on the wire terminates the session.
func call[T any](ctx context.Context, s *Session, name string, req proto.RequestArgs, rpl proto.Reply, value func(ok bool) T) (T, error) {
	v, err := RunBlocking(ctx, s, func(op *Operation[T]) {
		t := s.transport()
		if t == nil {
			s.stop(StateTerminated, fmt.Errorf("%s: session is closed", name))
			return
		}
		go func() {
			err := t.RawRequest(req, rpl)
			var perr proto.Error
			switch {
			case err == nil:
				op.Succeed(value(true))
			case errors.As(err, &perr):
				slog.Debug("audio server rejected request", "request", name, "error", perr)
				op.Fail(value(false))
			default:
				s.stop(StateTerminated, fmt.Errorf("%s: %w", name, err))
			}
		}()
	})
	if err != nil {
		slog.Debug("audio server request aborted", "request", name, "error", err)
		return v, err
	}
	return v, nil
}

// Sinks enumerates every sink with its ports in server order. A server that
// refuses the enumeration yields an empty list.
func (s *Session) Sinks(ctx context.Context) ([]SinkInfo, error) {
	var reply proto.GetSinkInfoListReply
	sinks, err := call(ctx, s, "get sink info list", &proto.GetSinkInfoList{}, &reply, func(ok bool) []SinkInfo {
		if !ok {
			slog.Warn("error occurred while fetching sink list")
			return nil
		}
		return convertSinks(reply)
	})
	if err != nil {
		return nil, err
	}
	return sinks, nil
}

func convertSinks(reply proto.GetSinkInfoListReply) []SinkInfo {
	out := make([]SinkInfo, 0, len(reply))
	for _, sink := range reply {
		if sink == nil {
			continue
		}
		info := SinkInfo{
			Name:           sink.SinkName,
			Description:    sink.Device,
			ActivePortName: sink.ActivePortName,
		}
		for _, p := range sink.Ports {
			info.Ports = append(info.Ports, PortInfo{Name: p.Name, Description: p.Description})
		}
		out = append(out, info)
	}
	return out
}

// DefaultSinkName returns the server-wide default sink. ok is false when the
// server refused the query or has no default sink.
func (s *Session) DefaultSinkName(ctx context.Context) (string, bool, error) {
	var reply proto.GetServerInfoReply
	name, err := call(ctx, s, "get server info", &proto.GetServerInfo{}, &reply, func(ok bool) string {
		if !ok {
			return ""
		}
		return reply.DefaultSinkName
	})
	if err != nil {
		return "", false, err
	}
	return name, name != "", nil
}

// SetDefaultSink asks the server to make sink the default. It reports
// whether the server accepted the change.
func (s *Session) SetDefaultSink(ctx context.Context, sink string) (bool, error) {
	return call(ctx, s, "set default sink", &proto.SetDefaultSink{SinkName: sink}, nil, accepted)
}

// SetActivePort switches the active port of sink, addressed by name.
func (s *Session) SetActivePort(ctx context.Context, sink, port string) (bool, error) {
	req := &proto.SetSinkPort{SinkIndex: proto.Undefined, SinkName: sink, Port: port}
	return call(ctx, s, "set sink port", req, nil, accepted)
}

func accepted(ok bool) bool { return ok }

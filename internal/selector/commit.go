package selector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/treykane/paccu/internal/model"
)

// Committer applies a choice on the audio server. The bool results report
// whether the server accepted the change; errors are bridge-level failures.
type Committer interface {
	SetDefaultSink(ctx context.Context, sink string) (bool, error)
	SetActivePort(ctx context.Context, sink, port string) (bool, error)
}

// RejectionError names a resource the server refused to switch to.
type RejectionError struct {
	Sink string
	// Port is empty when the default sink change was rejected.
	Port string
}

func (e *RejectionError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("can't set sink '%s'", e.Sink)
	}
	return fmt.Sprintf("can't set port '%s' to sink '%s'", e.Port, e.Sink)
}

// CommitResult is the outcome of a best-effort two-step commit.
type CommitResult struct {
	Target     model.OutputTarget
	Rejections []*RejectionError
}

// OK reports whether both steps were accepted.
func (r CommitResult) OK() bool { return len(r.Rejections) == 0 }

// Commit makes target's sink the default, then switches that sink to
// target's port. The port is set even if the sink change was rejected. A
// bridge-level error on either step stops the commit and is returned.
func Commit(ctx context.Context, c Committer, target model.OutputTarget) (CommitResult, error) {
	res := CommitResult{Target: target}

	ok, err := c.SetDefaultSink(ctx, target.SinkName)
	if err != nil {
		return res, fmt.Errorf("set default sink %s: %w", target.SinkName, err)
	}
	if !ok {
		rej := &RejectionError{Sink: target.SinkName}
		slog.Debug("audio server rejected default sink", "sink", target.SinkName)
		res.Rejections = append(res.Rejections, rej)
	}

	ok, err = c.SetActivePort(ctx, target.SinkName, target.PortName)
	if err != nil {
		return res, fmt.Errorf("set port %s on sink %s: %w", target.PortName, target.SinkName, err)
	}
	if !ok {
		rej := &RejectionError{Sink: target.SinkName, Port: target.PortName}
		slog.Debug("audio server rejected port", "sink", target.SinkName, "port", target.PortName)
		res.Rejections = append(res.Rejections, rej)
	}
	return res, nil
}

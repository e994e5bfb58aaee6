// Package catalog flattens the server's sink/port tree into the list of
// output targets the user picks from.
package catalog

import (
	"context"
	"log/slog"

	"github.com/treykane/paccu/internal/audioserver"
	"github.com/treykane/paccu/internal/model"
	"github.com/treykane/paccu/internal/util"
)

// Source is the part of an audio server session the builder needs.
type Source interface {
	Sinks(ctx context.Context) ([]audioserver.SinkInfo, error)
	DefaultSinkName(ctx context.Context) (string, bool, error)
}

// Build enumerates all sinks once, then asks for the default sink name to
// mark the active target. Only an enumeration failure is returned. Any
// failure to get the default sink leaves every target inactive.
func Build(ctx context.Context, src Source) (model.Catalog, error) {
	sinks, err := src.Sinks(ctx)
	if err != nil {
		return nil, err
	}

	defaultSink, ok, err := src.DefaultSinkName(ctx)
	switch {
	case err != nil:
		slog.Warn("can't get default sink name, no output will be marked active", "error", err)
		defaultSink = ""
	case !ok:
		slog.Warn("can't get default sink name, no output will be marked active")
	}
	return Flatten(sinks, defaultSink), nil
}

// Flatten emits one target per (sink, port) pair in server order. Sinks
// without ports contribute nothing. At most one target is marked active:
// the first whose sink is defaultSink and whose port is that sink's active
// port. An empty defaultSink marks none.
func Flatten(sinks []audioserver.SinkInfo, defaultSink string) model.Catalog {
	out := model.Catalog{}
	found := false
	for _, sink := range sinks {
		isDefault := defaultSink != "" && sink.Name == defaultSink
		for _, port := range sink.Ports {
			active := !found && isDefault &&
				sink.ActivePortName != "" && port.Name == sink.ActivePortName
			if active {
				found = true
			}
			out = append(out, model.OutputTarget{
				SinkName:        util.OrNA(sink.Name),
				SinkDescription: util.OrNA(sink.Description),
				PortName:        util.OrNA(port.Name),
				PortDescription: util.OrNA(port.Description),
				Active:          active,
			})
		}
	}
	return out
}

package model

import "fmt"

// OutputTarget is one selectable port on one sink.
type OutputTarget struct {
	SinkName        string `json:"sink_name"`
	SinkDescription string `json:"sink_description"`
	PortName        string `json:"port_name"`
	PortDescription string `json:"port_description"`
	Active          bool   `json:"active"`
}

// Label is the human readable line shown in the list and in the
// confirmation message.
func (t OutputTarget) Label() string {
	return fmt.Sprintf("%s, Port '%s'", t.SinkDescription, t.PortDescription)
}

// Catalog is the flat list of output targets in enumeration order
// (sink order, then port order within each sink). It is never mutated
// after it has been built.
type Catalog []OutputTarget

// ActiveIndex returns the position of the active target, if any.
func (c Catalog) ActiveIndex() (int, bool) {
	for i, t := range c {
		if t.Active {
			return i, true
		}
	}
	return 0, false
}

// Labels returns the display label of every target in order.
func (c Catalog) Labels() []string {
	out := make([]string, len(c))
	for i, t := range c {
		out[i] = t.Label()
	}
	return out
}

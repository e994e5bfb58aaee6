// Package notify sends an optional desktop notification after a switch.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/treykane/paccu/internal/model"
	"github.com/treykane/paccu/internal/util"
)

// Sender delivers one desktop notification.
type Sender func(title, message, icon string) error

// Notifier announces successful output switches. The zero value is disabled.
type Notifier struct {
	Enabled bool
	send    Sender
}

// New returns a notifier backed by beeep.
func New(enabled bool) *Notifier {
	return &Notifier{Enabled: enabled, send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

// Switched reports the new output. Failures are only logged; they never
// affect the switch itself.
func (n *Notifier) Switched(target model.OutputTarget) {
	if n == nil || !n.Enabled || n.send == nil {
		return
	}
	beeep.AppName = util.ClientName
	if err := n.send("Audio output switched", target.Label(), ""); err != nil {
		slog.Warn("failed to send desktop notification", "error", err)
		return
	}
	slog.Debug("desktop notification sent", "target", target.Label())
}

package notify

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/treykane/paccu/internal/model"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestSwitchedSendsLabel(t *testing.T) {
	var gotTitle, gotMessage string
	n := &Notifier{Enabled: true, send: func(title, message, _ string) error {
		gotTitle, gotMessage = title, message
		return nil
	}}
	n.Switched(model.OutputTarget{SinkDescription: "Speakers", PortDescription: "Headphones"})
	assert.Equal(t, "Audio output switched", gotTitle)
	assert.Equal(t, "Speakers, Port 'Headphones'", gotMessage)
}

func TestSwitchedDisabledDoesNothing(t *testing.T) {
	called := false
	n := &Notifier{send: func(string, string, string) error {
		called = true
		return nil
	}}
	n.Switched(model.OutputTarget{})
	assert.False(t, called)

	var nilNotifier *Notifier
	assert.NotPanics(t, func() { nilNotifier.Switched(model.OutputTarget{}) })
}

func TestSwitchedLogsSendError(t *testing.T) {
	logs := captureLog(t)
	n := &Notifier{Enabled: true, send: func(string, string, string) error {
		return errors.New("no notification daemon")
	}}
	n.Switched(model.OutputTarget{})
	assert.Contains(t, logs.String(), "failed to send desktop notification")
	assert.Contains(t, logs.String(), "no notification daemon")
}

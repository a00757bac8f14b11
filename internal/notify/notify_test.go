package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacksmith/trips/internal/cli"
)

func TestNoticeString(t *testing.T) {
	assert.Equal(t, "Trip Created: New trip has been added to your list.",
		Info("Trip Created", "New trip has been added to your list.").String())
	assert.Equal(t, "Trip deleted successfully", Info("", "Trip deleted successfully").String())
}

func TestWriter(t *testing.T) {
	cli.SetColorEnabled(false)
	defer cli.SetColorEnabled(true)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Notify(Destructive("Authentication Required", "Please sign in to save trips."))
	w.Notify(Info("", "Trip deleted successfully"))

	assert.Equal(t, "Authentication Required: Please sign in to save trips.\nTrip deleted successfully\n", buf.String())
}

func TestWriter_DestructiveIsRed(t *testing.T) {
	cli.SetColorEnabled(true)

	var buf bytes.Buffer
	NewWriter(&buf).Notify(Destructive("Oops", "bad"))

	assert.Equal(t, cli.Red("Oops: bad")+"\n", buf.String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(Info("a", "1"))
	r.Notify(Destructive("b", "2"))

	assert.Len(t, r.Notices(), 2)
	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, SeverityDestructive, last.Severity)
}

func TestBuffer(t *testing.T) {
	b := NewBuffer(2)
	assert.Empty(t, b.Drain())

	b.Notify(Info("", "1"))
	b.Notify(Info("", "2"))
	b.Notify(Info("", "3"))

	got := b.Drain()
	assert.Equal(t, []Notice{Info("", "2"), Info("", "3")}, got)
	assert.Empty(t, b.Drain(), "drain empties the buffer")
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	Multi{&a, &b, Discard}.Notify(Info("x", "y"))

	assert.Len(t, a.Notices(), 1)
	assert.Len(t, b.Notices(), 1)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	Log{Logger: l}.Notify(Info("quiet", "debug only"))
	assert.Empty(t, buf.String())

	Log{Logger: l}.Notify(Destructive("Authentication Required", "Please sign in to save trips."))
	assert.Contains(t, buf.String(), "Authentication Required")
}

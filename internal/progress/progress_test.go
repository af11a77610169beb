package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_DrawsOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, "Importing", 10, true)
	p.Increment()
	p.Print()
	assert.Equal(t, "\rImporting... 1/10 (10%)", buf.String())

	buf.Reset()
	p.Done()
	assert.Contains(t, buf.String(), "\r")
}

func TestProgress_SilentBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, "Importing", minItems-1, true)
	p.Increment()
	p.Print()
	p.Done()
	assert.Empty(t, buf.String())
}

func TestProgress_SilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, "Importing", 100, false)
	p.Increment()
	p.Print()
	assert.Empty(t, buf.String())
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := &Spinner{w: &buf, label: "Fetching", tty: true}
	s.Start()
	s.Tick()
	s.Stop()
	out := buf.String()
	assert.Contains(t, out, "⠋ Fetching...")
	assert.Contains(t, out, "⠙ Fetching...")

	buf.Reset()
	s.Tick()
	assert.Empty(t, buf.String(), "stopped spinner does not draw")
}

package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/decker502/engine2d/pkg/game"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		name string
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "ArrowLeft", true},
		{tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), "F3", true},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "Tab", true},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "A", true},
		{tcell.NewEventKey(tcell.KeyRune, 'M', tcell.ModShift), "M", true},
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), "Digit7", true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "Space", true},
		{tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModShift), "Equal", true},
		{tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), "Minus", true},
		{tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone), "/", true},
		{tcell.NewEventKey(tcell.KeyInsert, 0, tcell.ModNone), "", false},
	}
	for _, tt := range tests {
		name, ok := keyName(tt.ev)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.name, name)
	}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestKeyInputSynthesizesRelease(t *testing.T) {
	k := &keyInput{release: 500 * time.Millisecond}
	t0 := time.Unix(100, 0)

	_, ok := k.LastEvent()
	assert.False(t, ok)

	k.press("ArrowRight", t0)
	ev, ok := k.LastEvent()
	assert.True(t, ok)
	assert.Equal(t, game.KeyEvent{Type: game.KeyDown, Key: "ArrowRight", Seq: 1}, ev)

	// Auto-repeat keeps the key held without a new event.
	k.press("ArrowRight", t0.Add(400*time.Millisecond))
	k.expire(t0.Add(800 * time.Millisecond))
	ev, _ = k.LastEvent()
	assert.Equal(t, uint64(1), ev.Seq)

	k.expire(t0.Add(900 * time.Millisecond))
	ev, _ = k.LastEvent()
	assert.Equal(t, game.KeyEvent{Type: game.KeyUp, Key: "ArrowRight", Seq: 2}, ev)

	// Nothing left to release.
	k.expire(t0.Add(2 * time.Second))
	ev, _ = k.LastEvent()
	assert.Equal(t, uint64(2), ev.Seq)
}

func TestKeyInputSwitchesKeys(t *testing.T) {
	k := &keyInput{release: time.Second}
	t0 := time.Unix(100, 0)

	k.press("A", t0)
	k.press("D", t0.Add(10*time.Millisecond))
	ev, _ := k.LastEvent()
	assert.Equal(t, game.KeyEvent{Type: game.KeyDown, Key: "D", Seq: 2}, ev)
	assert.Equal(t, "D", k.held)
}

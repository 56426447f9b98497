package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/engine2d/pkg/game"
)

// keyInput reports the most recent key transition seen by Ebitengine.
// Key names are ebiten.Key.String() values such as "ArrowLeft" or "A".
type keyInput struct {
	ev  game.KeyEvent
	has bool

	pressed  []ebiten.Key
	released []ebiten.Key
}

func (k *keyInput) LastEvent() (game.KeyEvent, bool) { return k.ev, k.has }

func (k *keyInput) poll() {
	k.pressed = inpututil.AppendJustPressedKeys(k.pressed[:0])
	k.released = inpututil.AppendJustReleasedKeys(k.released[:0])
	k.record(k.pressed, k.released)
}

// record turns one frame's transitions into events. Presses are recorded
// after releases so a press in the same frame becomes the latest event.
func (k *keyInput) record(pressed, released []ebiten.Key) {
	for _, key := range released {
		k.emit(game.KeyUp, key)
	}
	for _, key := range pressed {
		k.emit(game.KeyDown, key)
	}
}

func (k *keyInput) emit(t game.KeyEventType, key ebiten.Key) {
	k.ev = game.KeyEvent{Type: t, Key: key.String(), Seq: k.ev.Seq + 1}
	k.has = true
}

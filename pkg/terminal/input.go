package terminal

import (
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/engine2d/pkg/game"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyTab:        "Tab",
	tcell.KeyEnter:      "Enter",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

var runeKeys = map[rune]string{
	' ': "Space",
	'+': "Equal",
	'=': "Equal",
	'-': "Minus",
	'_': "Minus",
}

// keyName converts a tcell key event into the key names the window host
// reports, so objects bind to one set of names. ok is false for keys with
// no equivalent.
func keyName(ev *tcell.EventKey) (name string, ok bool) {
	if ev.Key() != tcell.KeyRune {
		name, ok = specialKeys[ev.Key()]
		return name, ok
	}
	r := ev.Rune()
	if name, ok := runeKeys[r]; ok {
		return name, true
	}
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return strings.ToUpper(string(r)), true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), true
	case unicode.IsPrint(r):
		return string(r), true
	}
	return "", false
}

// isQuit reports whether ev should end the session.
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Modifiers()&tcell.ModCtrl != 0 && unicode.ToLower(ev.Rune()) == 'c'
	}
	return false
}

// keyInput turns terminal key presses into key events. Terminals report no
// releases, so a key-up is synthesized once a held key has not repeated
// for the release window.
type keyInput struct {
	ev  game.KeyEvent
	has bool

	held     string
	lastSeen time.Time
	release  time.Duration
}

func (k *keyInput) LastEvent() (game.KeyEvent, bool) { return k.ev, k.has }

// press records a key press. Auto-repeat of the held key only extends the
// hold.
func (k *keyInput) press(name string, at time.Time) {
	if k.held == name {
		k.lastSeen = at
		return
	}
	k.held = name
	k.lastSeen = at
	k.emit(game.KeyDown, name)
}

// expire releases the held key when it has been quiet long enough.
func (k *keyInput) expire(now time.Time) {
	if k.held == "" || now.Sub(k.lastSeen) < k.release {
		return
	}
	name := k.held
	k.held = ""
	k.emit(game.KeyUp, name)
}

func (k *keyInput) emit(t game.KeyEventType, key string) {
	k.ev = game.KeyEvent{Type: t, Key: key, Seq: k.ev.Seq + 1}
	k.has = true
}

package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// action is a keybinding handler.
type action func(*Interface)

var keybindings = map[tcell.Key]action{
	tcell.KeyEscape: (*Interface).abort,
	tcell.KeyCtrlC:  (*Interface).abort,
	tcell.KeyCtrlD:  (*Interface).abort,
	tcell.KeyCtrlG:  (*Interface).abort,
	tcell.KeyEnter:  (*Interface).emit,

	tcell.KeyBackspace:  (*Interface).deleteChar, // C-h
	tcell.KeyBackspace2: (*Interface).deleteChar, // DEL
	tcell.KeyCtrlW:      (*Interface).deleteWord,
	tcell.KeyCtrlU:      (*Interface).deleteAll,
	tcell.KeyTab:        (*Interface).autocomplete,

	tcell.KeyCtrlP: (*Interface).prev,
	tcell.KeyCtrlK: (*Interface).prev,
	tcell.KeyUp:    (*Interface).prev,
	tcell.KeyCtrlN: (*Interface).next,
	tcell.KeyCtrlJ: (*Interface).next,
	tcell.KeyDown:  (*Interface).next,
	tcell.KeyPgUp:  (*Interface).pageUp,
	tcell.KeyPgDn:  (*Interface).pageDown,

	tcell.KeyCtrlA: (*Interface).beginning,
	tcell.KeyHome:  (*Interface).beginning,
	tcell.KeyCtrlE: (*Interface).end,
	tcell.KeyEnd:   (*Interface).end,
	tcell.KeyLeft:  (*Interface).left,
	tcell.KeyRight: (*Interface).right,

	tcell.KeyCtrlR: (*Interface).recall,
}

// bindingFor returns the handler for ev, or nil for keys that insert text or
// are ignored.
func bindingFor(ev *tcell.EventKey) action {
	key := ev.Key()
	// Some terminals report control chords as a rune with ModCtrl.
	if key == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		r := unicode.ToLower(ev.Rune())
		if r >= 'a' && r <= 'z' {
			key = tcell.KeyCtrlA + tcell.Key(r-'a')
		}
	}
	return keybindings[key]
}

// insertable reports whether ev types a character into the query.
func insertable(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return false
	}
	return unicode.IsPrint(ev.Rune())
}

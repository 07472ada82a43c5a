package tui

import (
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/sift/config"
)

// editor is a single-line query buffer with a cursor.
// The cursor indexes runes, so it always sits on a character boundary.
type editor struct {
	buf    []rune
	cursor int
	size   int // Length of the query in bytes
}

func (e *editor) String() string {
	return string(e.buf)
}

// beforeCursor returns the text left of the cursor.
func (e *editor) beforeCursor() string {
	return string(e.buf[:e.cursor])
}

// set replaces the query, truncating it to config.MaxQueryLength bytes, and
// moves the cursor to the end.
func (e *editor) set(s string) {
	e.buf = e.buf[:0]
	e.size = 0
	for _, r := range s {
		n := utf8.RuneLen(r)
		if n < 0 || e.size+n > config.MaxQueryLength {
			break
		}
		e.buf = append(e.buf, r)
		e.size += n
	}
	e.cursor = len(e.buf)
}

// insert adds r at the cursor. It reports false if the query is full.
func (e *editor) insert(r rune) bool {
	n := utf8.RuneLen(r)
	if n < 0 || e.size+n > config.MaxQueryLength {
		return false
	}
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
	e.size += n
	return true
}

// remove deletes the runes in [from, to) and leaves the cursor at from.
func (e *editor) remove(from, to int) {
	for _, r := range e.buf[from:to] {
		e.size -= utf8.RuneLen(r)
	}
	e.buf = append(e.buf[:from], e.buf[to:]...)
	e.cursor = from
}

// deleteBackward removes the character before the cursor.
func (e *editor) deleteBackward() {
	if e.cursor > 0 {
		e.remove(e.cursor-1, e.cursor)
	}
}

// deleteWord removes the word before the cursor along with any whitespace
// between it and the cursor.
func (e *editor) deleteWord() {
	i := e.cursor
	for i > 0 && unicode.IsSpace(e.buf[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(e.buf[i-1]) {
		i--
	}
	e.remove(i, e.cursor)
}

// deleteToStart removes everything before the cursor.
func (e *editor) deleteToStart() {
	e.remove(0, e.cursor)
}

func (e *editor) left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *editor) right() {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
}

func (e *editor) home() {
	e.cursor = 0
}

func (e *editor) end() {
	e.cursor = len(e.buf)
}

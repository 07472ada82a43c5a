package tui

import (
	"strings"
	"testing"

	"github.com/poiesic/sift/config"
	"github.com/stretchr/testify/assert"
)

func TestEditor_InsertAndMove(t *testing.T) {
	var e editor
	for _, r := range "mai" {
		e.insert(r)
	}
	assert.Equal(t, "mai", e.String())
	assert.Equal(t, 3, e.cursor)

	e.left()
	e.left()
	e.insert('x')
	assert.Equal(t, "mxai", e.String())
	assert.Equal(t, "mx", e.beforeCursor())

	e.home()
	e.left()
	assert.Equal(t, 0, e.cursor)
	e.insert('>')
	assert.Equal(t, ">mxai", e.String())

	e.end()
	e.right()
	assert.Equal(t, 5, e.cursor)
}

func TestEditor_Deletion(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		op     func(*editor)
		want   string
		after  int
	}{
		{"backspace at end", "main", 4, (*editor).deleteBackward, "mai", 3},
		{"backspace in middle", "main", 2, (*editor).deleteBackward, "min", 1},
		{"backspace at start", "main", 0, (*editor).deleteBackward, "main", 0},
		{"backspace multibyte", "naïve", 3, (*editor).deleteBackward, "nave", 2},
		{"word at end", "src main.rs", 11, (*editor).deleteWord, "src ", 4},
		{"word with trailing space", "src main  ", 10, (*editor).deleteWord, "src ", 4},
		{"word in middle", "one two three", 7, (*editor).deleteWord, "one  three", 4},
		{"word only whitespace", "   ", 3, (*editor).deleteWord, "", 0},
		{"word at start", "main", 0, (*editor).deleteWord, "main", 0},
		{"to start", "src/main.rs", 4, (*editor).deleteToStart, "main.rs", 0},
		{"to start at start", "main", 0, (*editor).deleteToStart, "main", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e editor
			e.set(tt.text)
			e.cursor = tt.cursor

			tt.op(&e)
			assert.Equal(t, tt.want, e.String())
			assert.Equal(t, tt.after, e.cursor)
			assert.Equal(t, len(tt.want), e.size)
		})
	}
}

func TestEditor_LengthLimit(t *testing.T) {
	var e editor
	e.set(strings.Repeat("a", config.MaxQueryLength+10))
	assert.Len(t, e.String(), config.MaxQueryLength)
	assert.False(t, e.insert('b'))

	e.deleteBackward()
	// A two-byte rune does not fit in one remaining byte
	assert.False(t, e.insert('é'))
	assert.True(t, e.insert('b'))
	assert.Len(t, e.String(), config.MaxQueryLength)
}

package logic

import "fmt"

// Cursor is an optional index into the displayed suggestion list
type Cursor struct {
	index int
	valid bool
}

// NoSelection is the empty cursor
var NoSelection = Cursor{}

// At returns a cursor on index i
func At(i int) Cursor {
	return Cursor{index: i, valid: true}
}

// Index returns the selected index and whether there is a selection
func (c Cursor) Index() (int, bool) {
	return c.index, c.valid
}

// IsSet reports whether a suggestion is selected
func (c Cursor) IsSet() bool {
	return c.valid
}

// Is reports whether the cursor is on index i
func (c Cursor) Is(i int) bool {
	return c.valid && c.index == i
}

func (c Cursor) String() string {
	if !c.valid {
		return "none"
	}
	return fmt.Sprintf("%d", c.index)
}

// Next moves forward one suggestion, wrapping to the first.
// With no suggestions the cursor stays unset.
func Next(c Cursor, count int) Cursor {
	if count <= 0 {
		return NoSelection
	}
	if !c.valid {
		return At(0)
	}
	return At((c.index + 1) % count)
}

// Prev moves back one suggestion, wrapping to the last.
func Prev(c Cursor, count int) Cursor {
	if !c.valid {
		if count <= 0 {
			return At(0)
		}
		return At(count - 1)
	}
	if count <= 0 {
		return At(0)
	}
	if c.index <= 0 {
		return At(count - 1)
	}
	return At(c.index - 1)
}

package domain

// Cursor is a wrapping index over a list of n items.
// With n == 0 there is no focus and moves are no-ops.
type Cursor struct {
	n     int
	index int
}

// NewCursor returns a cursor over n items focused on the first one.
func NewCursor(n int) Cursor {
	c := Cursor{}
	c.Reset(n)
	return c
}

// Reset sets the length and focuses the first item (or nothing when empty).
func (c *Cursor) Reset(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	if n == 0 {
		c.index = -1
		return
	}
	c.index = 0
}

// Len returns the number of items.
func (c Cursor) Len() int { return c.n }

// Index returns the focused index, or -1 when empty.
func (c Cursor) Index() int { return c.index }

// MoveUp focuses the previous item, wrapping from the first to the last.
func (c *Cursor) MoveUp() {
	if c.n == 0 {
		return
	}
	c.index = (c.index - 1 + c.n) % c.n
}

// MoveDown focuses the next item, wrapping from the last to the first.
func (c *Cursor) MoveDown() {
	if c.n == 0 {
		return
	}
	c.index = (c.index + 1) % c.n
}

// SelectAt focuses i. Out of range indices are rejected.
func (c *Cursor) SelectAt(i int) bool {
	if i < 0 || i >= c.n {
		return false
	}
	c.index = i
	return true
}

// Package sheet provides the row-addressed output surface used to compose
// worksheets: a shared row cursor, LIFO-scoped sections, and the sinks that
// receive cell writes (an excelize workbook and an in-memory recorder).
package sheet

// Cursor is the single write head shared by every writer composing one
// sheet. Nested writers receive the same *Cursor and advance it in place, so
// no level has to hand an updated row back to its caller.
//
// Cursor performs no bounds checking; keeping the row at 1 or above is the
// caller's responsibility.
type Cursor struct {
	row int
}

// Checkpoint is a saved cursor position.
type Checkpoint struct {
	row int
}

// NewCursor returns a cursor positioned at row (1-based).
func NewCursor(row int) *Cursor {
	return &Cursor{row: row}
}

// Current returns the row the next write goes to.
func (c *Cursor) Current() int {
	return c.row
}

// Advance moves the cursor n rows down.
func (c *Cursor) Advance(n int) {
	c.row += n
}

// Next moves the cursor one row down.
func (c *Cursor) Next() {
	c.row++
}

// Retreat moves the cursor n rows up.
func (c *Cursor) Retreat(n int) {
	c.row -= n
}

// Prev moves the cursor one row up.
func (c *Cursor) Prev() {
	c.row--
}

// JumpTo positions the cursor at row.
func (c *Cursor) JumpTo(row int) {
	c.row = row
}

// Snapshot saves the current position.
func (c *Cursor) Snapshot() Checkpoint {
	return Checkpoint{row: c.row}
}

// Restore returns the cursor to a saved position.
func (c *Cursor) Restore(cp Checkpoint) {
	c.row = cp.row
}

// Row returns the saved row.
func (cp Checkpoint) Row() int {
	return cp.row
}

package keypad

// Text field cursor geometry.
const (
	CursorStart = 20
	CursorStep  = 20
	// CursorLimit is the last position a character may be written at.
	CursorLimit = 200
)

// Cursor is the x position of the next echoed character.
type Cursor struct {
	x int
}

func NewCursor() Cursor { return Cursor{x: CursorStart} }

func (c Cursor) X() int { return c.x }

// Full reports whether the field has no room for another character.
func (c Cursor) Full() bool { return c.x > CursorLimit }

func (c *Cursor) Advance() { c.x += CursorStep }

func (c *Cursor) Reset() { c.x = CursorStart }

// Capacity is how many characters fit in the field.
func Capacity() int {
	return (CursorLimit-CursorStart)/CursorStep + 1
}

package core

// Color is a "#RRGGBB" hex colour taken from a variant's palette.
// The zero value means "terminal default".
type Color string

// ColorDefault leaves the cell in the terminal's default colour.
const ColorDefault Color = ""

// Valid reports whether c is empty or a well-formed "#RRGGBB" string.
func (c Color) Valid() bool {
	if c == ColorDefault {
		return true
	}
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for i := 1; i < len(c); i++ {
		ch := c[i]
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

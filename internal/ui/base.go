package ui

// Base provides focus, size and screen position for widgets. Embed it in
// component models.
//
//	type Model struct {
//	    ui.Base
//	    cursor cursor.Cursor
//	}
type Base struct {
	width, height int
	row, col      int
	focused       bool
}

// SetFocused sets whether the component is focused.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns whether the component is focused.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Size returns the component dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// SetOrigin records the 0-based screen cell of the component's top-left
// corner, used to translate mouse events.
func (b *Base) SetOrigin(row, col int) {
	b.row = row
	b.col = col
}

// Origin returns the 0-based screen cell of the top-left corner.
func (b Base) Origin() (row, col int) {
	return b.row, b.col
}

// Local translates a screen cell to component-local coordinates and reports
// whether it falls inside the component.
func (b Base) Local(x, y int) (lx, ly int, inside bool) {
	lx, ly = x-b.col, y-b.row
	return lx, ly, lx >= 0 && ly >= 0 && lx < b.width && ly < b.height
}

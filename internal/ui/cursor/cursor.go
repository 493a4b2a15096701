// Package cursor provides a focus position and scroll offset for scrollable strips.
package cursor

// Cursor manages a focus position and a scroll offset over a list shown
// through a window of `span` slots. The list length and span are passed to
// methods rather than stored, since they change with the terminal size.
type Cursor struct {
	pos    int // focused item (0-indexed)
	offset int // first visible item
	margin int // items kept visible around the focus when it moves
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the focused position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the index of the first visible item.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the focus by delta, clamped to the list, and scrolls so the focus
// stays visible with its margin. No-op on an empty list.
func (c *Cursor) Move(delta, listLen, span int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.follow(listLen, span)
}

// Jump sets the focus to pos, clamped to the list, and scrolls to keep it visible.
func (c *Cursor) Jump(pos, listLen, span int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.follow(listLen, span)
}

// SetPos moves the focus to pos, clamped to the list, without scrolling.
func (c *Cursor) SetPos(pos, listLen int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
}

// ScrollBy moves the window by delta without touching the focus.
// Returns true if the offset changed.
func (c *Cursor) ScrollBy(delta, listLen, span int) bool {
	old := c.offset
	c.offset = clamp(c.offset+delta, maxOffset(listLen, span))
	return c.offset != old
}

// IsVisible reports whether item i lies inside the window.
func (c Cursor) IsVisible(i, listLen, span int) bool {
	start, end := c.VisibleRange(listLen, span)
	return i >= start && i < end
}

// Reveal scrolls the minimum amount needed to bring item i into the window.
// Nothing moves if i is already visible. Returns true if the offset changed.
func (c *Cursor) Reveal(i, listLen, span int) bool {
	if span <= 0 || i < 0 || i >= listLen {
		return false
	}
	if c.IsVisible(i, listLen, span) {
		return false
	}
	old := c.offset
	if i < c.offset {
		c.offset = i
	} else {
		c.offset = i - span + 1
	}
	c.offset = clamp(c.offset, maxOffset(listLen, span))
	return c.offset != old
}

// follow adjusts the offset so the focus stays visible with its margin.
func (c *Cursor) follow(listLen, span int) {
	if span <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (span-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+span-margin {
		c.offset = c.pos - span + margin + 1
	}
	c.offset = clamp(c.offset, maxOffset(listLen, span))
}

// ClampToBounds keeps focus and offset valid after the list or span shrinks.
func (c *Cursor) ClampToBounds(listLen, span int) {
	if listLen == 0 {
		c.Reset()
		return
	}
	c.pos = clamp(c.pos, listLen-1)
	c.offset = clamp(c.offset, maxOffset(listLen, span))
}

// VisibleRange returns the visible indices [start, end).
func (c Cursor) VisibleRange(listLen, span int) (start, end int) {
	if listLen == 0 || span <= 0 {
		return 0, 0
	}
	start = min(c.offset, maxOffset(listLen, span))
	end = min(start+span, listLen)
	return start, end
}

// Reset moves focus and window back to the start.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

func maxOffset(listLen, span int) int {
	return max(listLen-span, 0)
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

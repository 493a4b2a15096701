// Package ui provides shared UI constants and utilities.
package ui

// Layout constants shared by the gallery widgets.
const (
	// ThumbScrollMargin is the number of thumbnails kept visible beside the
	// keyboard cursor.
	ThumbScrollMargin = 1

	// BorderSize is the space a rounded panel border takes on each side.
	BorderSize = 1

	// MinImageRows is the smallest image area worth drawing.
	MinImageRows = 2
)

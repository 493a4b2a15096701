//go:build !unix

package imgproto

func cellSize() (cellW, cellH int) {
	return defaultCellW, defaultCellH
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/compositor/grid.go
// Summary: Terminal cell grid handed to the text and cursor passes.

package compositor

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell. A zero Ch after a wide rune marks its
// continuation.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Span is a selected run of cells on one row, End exclusive.
type Span struct {
	Row, Start, End int
}

// TextGrid is the terminal content for one frame.
type TextGrid struct {
	Cols, Rows    int
	CellW, CellH  int
	Cells         []Cell
	CursorCol     int
	CursorRow     int
	CursorVisible bool
	Selection     []Span
}

// NewTextGrid returns a blank grid.
func NewTextGrid(cols, rows, cellW, cellH int) *TextGrid {
	g := &TextGrid{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH, CursorVisible: true}
	g.Cells = make([]Cell, cols*rows)
	for i := range g.Cells {
		g.Cells[i] = Cell{Ch: ' ', Style: tcell.StyleDefault}
	}
	return g
}

// At returns the cell at col,row.
func (g *TextGrid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return Cell{}
	}
	return g.Cells[row*g.Cols+col]
}

// Set stores a cell.
func (g *TextGrid) Set(col, row int, c Cell) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	g.Cells[row*g.Cols+col] = c
}

// WriteString writes s at col,row with style and returns the column after it.
// Wide runes take two cells.
func (g *TextGrid) WriteString(col, row int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		g.Set(col, row, Cell{Ch: r, Style: style})
		if w == 2 {
			g.Set(col+1, row, Cell{Ch: 0, Style: style})
		}
		col += w
	}
	return col
}

// CellRect returns the pixel rectangle of col,row spanning width cells.
func (g *TextGrid) CellRect(col, row, width int) image.Rectangle {
	x, y := col*g.CellW, row*g.CellH
	return image.Rect(x, y, x+width*g.CellW, y+g.CellH)
}

// CursorRect returns the pixel rectangle of the cursor cell.
func (g *TextGrid) CursorRect() image.Rectangle {
	w := 1
	if runewidth.RuneWidth(g.At(g.CursorCol, g.CursorRow).Ch) == 2 {
		w = 2
	}
	return g.CellRect(g.CursorCol, g.CursorRow, w)
}

// PixelSize returns the grid size in pixels.
func (g *TextGrid) PixelSize() image.Point {
	return image.Pt(g.Cols*g.CellW, g.Rows*g.CellH)
}

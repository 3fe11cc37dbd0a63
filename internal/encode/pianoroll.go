package encode

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/leandrodaf/midi2gb/internal/smf"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
)

const (
	CellWidth = 4
	RowHeight = 6
)

// WritePianoRoll draws the song as a PNG: one row per playable pitch, lowest at
// the bottom, and one column per delay unit. Zero-delay notes get one column.
func WritePianoRoll(w io.Writer, song *contracts.Song) error {
	columns := 0
	for _, n := range song.Notes {
		columns += max(int(n.Delay), 1)
	}
	rows := smf.HighestNoteIndex + 1
	width, height := max(columns, 1)*CellWidth, rows*RowHeight

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.08, 0.1, 0.08)
	dc.Clear()

	dc.SetRGB(0.2, 0.26, 0.2)
	dc.SetLineWidth(1)
	for pitch := 0; pitch < rows; pitch += 12 {
		y := float64((rows-pitch)*RowHeight) - 0.5
		dc.DrawLine(0, y, float64(width), y)
	}
	dc.Stroke()

	x := 0
	for _, n := range song.Notes {
		length := max(int(n.Delay), 1)
		if int(n.Pitch) < rows {
			y := (rows - 1 - int(n.Pitch)) * RowHeight
			dc.DrawRectangle(float64(x*CellWidth), float64(y), float64(length*CellWidth-1), RowHeight-1)
		}
		x += length
	}
	dc.SetRGB(0.55, 0.74, 0.06)
	dc.Fill()

	return dc.EncodePNG(w)
}

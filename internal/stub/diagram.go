package stub

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
)

const (
	diagramWidth  = 320
	diagramHeight = 160
)

// Diagram renders a placeholder PNG whose palette is derived from label, so
// the same concept always yields the same picture.
func Diagram(label string) ([]byte, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	sum := h.Sum32()
	fg := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 0xff}
	bg := color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, diagramWidth, diagramHeight))
	for y := 0; y < diagramHeight; y++ {
		for x := 0; x < diagramWidth; x++ {
			img.Set(x, y, bg)
		}
	}
	// three boxes joined by a line, a stand-in for a node diagram
	boxes := []image.Rectangle{
		image.Rect(20, 60, 80, 100),
		image.Rect(130, 20, 190, 60),
		image.Rect(240, 100, 300, 140),
	}
	for _, b := range boxes {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if x == b.Min.X || x == b.Max.X-1 || y == b.Min.Y || y == b.Max.Y-1 {
					img.Set(x, y, fg)
				}
			}
		}
	}
	for x := 80; x < 240; x++ {
		img.Set(x, 80, fg)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

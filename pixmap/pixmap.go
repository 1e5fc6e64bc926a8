package pixmap

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// HalfBlock renders the upper pixel as foreground and the lower as background
const HalfBlock = '▀'

// alphaCutoff below which a pixel shows the content underneath
const alphaCutoff = 0x7fff

// FitMode controls how a source maps onto the target cell box
type FitMode uint8

const (
	Stretch FitMode = iota // fill the box, ignoring aspect
	Contain                // largest aspect-correct size inside the box
)

// Pixel is one half of a terminal cell
type Pixel struct {
	Color  colorful.Color
	Opaque bool
}

// Cell is a terminal cell holding two stacked pixels
type Cell struct {
	Upper Pixel
	Lower Pixel
}

// Image is a converted picture in terminal cells
type Image struct {
	Cells  []Cell
	Width  int
	Height int
}

// At returns the cell at column x, row y
func (im *Image) At(x, y int) Cell {
	return im.Cells[y*im.Width+x]
}

// Decode reads a PNG or JPEG
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// Load opens and decodes an image file
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// CellSize computes the cell box for src inside cols x rows
// Each cell covers one pixel column and two pixel rows
func CellSize(srcW, srcH, cols, rows int, mode FitMode) (int, int) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	if mode == Stretch {
		return cols, rows
	}

	// Pixel grid is cols x rows*2; preserve srcW:srcH in it
	w := cols
	h := (w*srcH/srcW + 1) / 2
	if h > rows {
		h = rows
		w = h * 2 * srcW / srcH
	}
	return max(w, 1), max(h, 1)
}

// Scale resamples src to w x h pixels
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Convert fits src into cols x rows half-block cells
func Convert(src image.Image, cols, rows int, mode FitMode) *Image {
	b := src.Bounds()
	w, h := CellSize(b.Dx(), b.Dy(), cols, rows, mode)
	if w == 0 || h == 0 {
		return &Image{}
	}

	px := Scale(src, w, h*2)
	out := &Image{Cells: make([]Cell, w*h), Width: w, Height: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Cells[y*w+x] = Cell{
				Upper: toPixel(px.At(x, y*2)),
				Lower: toPixel(px.At(x, y*2+1)),
			}
		}
	}
	return out
}

func toPixel(c color.Color) Pixel {
	_, _, _, a := c.RGBA()
	if a < alphaCutoff {
		return Pixel{}
	}
	cf, _ := colorful.MakeColor(c)
	return Pixel{Color: cf.Clamped(), Opaque: true}
}

// Placeholder is a vertical gradient from top to bottom, drawn for missing images
func Placeholder(cols, rows int, top, bottom colorful.Color) *Image {
	if cols <= 0 || rows <= 0 {
		return &Image{}
	}
	out := &Image{Cells: make([]Cell, cols*rows), Width: cols, Height: rows}
	span := float64(rows*2 - 1)
	for y := 0; y < rows; y++ {
		upper := top.BlendLab(bottom, float64(y*2)/max(span, 1)).Clamped()
		lower := top.BlendLab(bottom, float64(y*2+1)/max(span, 1)).Clamped()
		for x := 0; x < cols; x++ {
			out.Cells[y*cols+x] = Cell{
				Upper: Pixel{Color: upper, Opaque: true},
				Lower: Pixel{Color: lower, Opaque: true},
			}
		}
	}
	return out
}

// Draw blits im at (x, y); transparent halves keep the colour already on screen
func (im *Image) Draw(s tcell.Screen, x, y int) {
	sw, sh := s.Size()
	for row := 0; row < im.Height; row++ {
		sy := y + row
		if sy < 0 || sy >= sh {
			continue
		}
		for col := 0; col < im.Width; col++ {
			sx := x + col
			if sx < 0 || sx >= sw {
				continue
			}
			c := im.Cells[row*im.Width+col]
			if !c.Upper.Opaque && !c.Lower.Opaque {
				continue
			}

			under, underLow := underlying(s, sx, sy)
			fg, bg := under, underLow
			if c.Upper.Opaque {
				fg = ToTcell(c.Upper.Color)
			}
			if c.Lower.Opaque {
				bg = ToTcell(c.Lower.Color)
			}
			s.SetContent(sx, sy, HalfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

// underlying returns the upper and lower colours of an existing cell
func underlying(s tcell.Screen, x, y int) (tcell.Color, tcell.Color) {
	r, _, style, _ := s.GetContent(x, y)
	fg, bg, _ := style.Decompose()
	if r == HalfBlock {
		return fg, bg
	}
	return bg, bg
}

// ToTcell converts a colour to a truecolor tcell colour
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// FromTcell converts a tcell colour back; unset colours map to black
func FromTcell(c tcell.Color) colorful.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return colorful.Color{}
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

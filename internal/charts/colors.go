package charts

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with an opacity in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

func rgba(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// String renders c as a CSS rgba() value.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// NRGBA converts c for image renderers.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}

// Over returns the opaque hex colour of c composited onto background. Terminals
// have no alpha channel, so translucent colours are flattened this way.
func (c Color) Over(background string) string {
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	fg, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	return bg.BlendRgb(fg, c.A).Clamped().Hex()
}

// ColorPair is the line colour of a population and the fill used for its
// confidence band.
type ColorPair struct {
	Solid       Color
	Translucent Color
}

// BandAlpha is the opacity of confidence band fills.
const BandAlpha = 0.25

func pair(r, g, b uint8) ColorPair {
	return ColorPair{Solid: rgba(r, g, b, 1), Translucent: rgba(r, g, b, BandAlpha)}
}

// palette is the fixed colour cycle used for chart items. It is never
// modified; Palette hands out copies.
var palette = [...]ColorPair{
	pair(0, 0, 255),   // Blue
	pair(255, 0, 0),   // Red
	pair(0, 0, 0),     // Black
	pair(128, 0, 240), // Purple
	pair(240, 128, 0), // Orange
	pair(0, 128, 240), // Sky blue
	pair(0, 255, 0),   // Green
}

// PaletteSize is the number of entries in the colour cycle.
const PaletteSize = len(palette)

// Palette returns a copy of the colour cycle.
func Palette() []ColorPair {
	return slices.Clone(palette[:])
}

// ColorIndex folds any integer into a valid palette position.
func ColorIndex(index int) int {
	n := PaletteSize
	return ((index % n) + n) % n
}

// ColorFor returns the palette entry for a given item index, cycling through the palette.
func ColorFor(index int) ColorPair {
	return palette[ColorIndex(index)]
}

// TerminalBackground is the colour translucent fills are flattened onto.
const TerminalBackground = "#000000"

// AxisColor is the color used for chart axes.
const AxisColor = lipgloss.Color("#CCBB44") // Olive/Yellow - high visibility

// LabelColor is the color used for chart labels.
const LabelColor = lipgloss.Color("#66CCEE") // Cyan - good contrast

// SeriesColor returns the terminal colour of the solid palette entry for index.
func SeriesColor(index int) lipgloss.Color {
	return terminalColor(ColorFor(index).Solid)
}

// SeriesStyle returns a lipgloss style with the foreground color for the given series index.
func SeriesStyle(index int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeriesColor(index))
}

// invisibleFallback replaces palette colours that vanish into the terminal background.
const invisibleFallback = "#BBBBBB" // Grey

func terminalColor(c Color) lipgloss.Color {
	hex := c.Over(TerminalBackground)
	if strings.EqualFold(hex, TerminalBackground) {
		return lipgloss.Color(invisibleFallback)
	}
	return lipgloss.Color(hex)
}

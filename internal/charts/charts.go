// Package charts composes calendar series into ordered draw directives and
// renders them for terminals, images and structured output.
package charts

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// DefaultTerminalWidth is the fallback terminal width when detection fails.
const DefaultTerminalWidth = 80

// ChartWidthPadding is the horizontal padding subtracted from terminal width for chart rendering.
const ChartWidthPadding = 6

// TerminalWidth returns the usable chart width of the attached terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = DefaultTerminalWidth
	}
	return width - ChartWidthPadding
}

// Output formats understood by ForFormat.
const (
	FormatGraph = "graph"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
)

// ForFormat returns the renderer for an output format. Width is the terminal
// width for graphs; zero detects it.
func ForFormat(format string, width int) (Renderer, error) {
	switch format {
	case FormatGraph:
		return TerminalRenderer{Width: width}, nil
	case FormatJSON:
		return RendererFunc(EncodeJSON), nil
	case FormatYAML:
		return RendererFunc(EncodeYAML), nil
	case FormatSVG, FormatPNG, FormatPDF:
		return ImageRenderer{Format: format}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", ErrConfiguration, format)
	}
}

// IsBinary reports whether format produces non-text output.
func IsBinary(format string) bool {
	return format == FormatPNG || format == FormatPDF
}

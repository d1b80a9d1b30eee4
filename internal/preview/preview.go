// Package preview renders finished cards as ANSI half-block art.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/arcanaland/cardgen/internal/card"
)

// DefaultWidth is the width of the art in terminal columns.
const DefaultWidth = 40

// Render converts img to truecolor ANSI art that is width columns wide.
// Each character cell covers a 2x2 block of the resized image; the top
// pair becomes the foreground of '▀' and the bottom pair the background.
func Render(img image.Image, width int) string {
	b := img.Bounds()
	if width <= 0 || b.Empty() {
		return ""
	}
	// terminal cells are roughly twice as tall as they are wide
	height := width * b.Dy() / (2 * b.Dx())
	if height < 1 {
		height = 1
	}

	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			fg := averageColor(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bg := averageColor(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(cell('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// colorAt returns the pixel at x,y composited over black.
func colorAt(img image.Image, x, y int) colorful.Color {
	b := img.Bounds()
	if !(image.Pt(x, y).In(b)) {
		return colorful.Color{}
	}
	r, g, bl, _ := img.At(x, y).RGBA()
	// RGBA is alpha-premultiplied, which is exactly "over black"
	c, _ := colorful.MakeColor(color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(bl), A: 0xffff})
	return c
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

func cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", r1, g1, b1, r2, g2, b2, char)
}

// Info returns the labelled lines printed beside the art.
func Info(c card.Card, v card.Variant, path string) []string {
	label := func(name string) string { return colorize.CyanString("%-8s", name+":") }

	lines := []string{
		label("Card") + colorize.HiWhiteString("%s", c.Key),
		label("Rarity") + colorize.HiWhiteString("%s", string(c.Rarity)),
		label("Elixir") + colorize.HiWhiteString("%d", c.Elixir),
		label("Variant") + colorize.HiWhiteString("%s", v.Name()),
	}
	if path != "" {
		lines = append(lines, label("File")+colorize.HiWhiteString("%s", path))
	}
	return lines
}

// Display prints art on the left and info on the right. termWidth is the
// terminal width; info lines are truncated to fit when it is known.
func Display(w io.Writer, art string, info []string, termWidth int) {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	maxArtWidth := 0
	for _, line := range artLines {
		if n := visibleLen(line); n > maxArtWidth {
			maxArtWidth = n
		}
	}

	const spacing = 4
	infoStartCol := maxArtWidth + spacing
	infoWidth := termWidth - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	fmt.Fprintln(w)
	for i := 0; i < max(len(artLines), len(info)); i++ {
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol-visibleLen(artLines[i])))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol))
		}

		if i < len(info) {
			line := info[i]
			if termWidth > 0 && visibleLen(line) > infoWidth {
				line = truncate(stripAnsi(line), infoWidth)
			}
			fmt.Fprint(w, line)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func visibleLen(s string) int {
	return len([]rune(stripAnsi(s)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

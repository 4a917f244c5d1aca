package loot

import "strings"

// DefaultFontSize is the text size used when a TextBox has none set.
const DefaultFontSize = 13

// TextBox paints a filled box with lines of text. Text is split on '\n';
// empty lines are dropped.
type TextBox struct {
	Object

	Text       string
	FontSize   float64
	Foreground Color
	Background Color

	// LineMargin is the extra space between lines; MarginLeft and MarginTop
	// inset the text from the box edges.
	LineMargin int
	MarginLeft int
	MarginTop  int
}

// NewTextBox creates a black-on-white text box.
func NewTextBox(x, y, w, h int, text string) *TextBox {
	return &TextBox{
		Object:     Object{X: x, Y: y, Width: w, Height: h},
		Text:       text,
		FontSize:   DefaultFontSize,
		Foreground: ColorBlack,
		Background: ColorWhite,
		LineMargin: 2,
		MarginLeft: 8,
		MarginTop:  8,
	}
}

// Lines returns the lines the box paints.
func (t *TextBox) Lines() []string {
	var lines []string
	for _, line := range strings.Split(t.Text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (t *TextBox) fontSize() float64 {
	if t.FontSize <= 0 {
		return DefaultFontSize
	}
	return t.FontSize
}

// Draw fills the background, then paints each line. The first baseline sits
// one font size below the top margin; each further line steps down by the
// font size plus LineMargin.
func (t *TextBox) Draw(c Canvas) {
	c.FillRect(t.X, t.Y, t.Width, t.Height, t.Background)

	size := t.fontSize()
	step := int(size) + t.LineMargin
	x := t.X + t.MarginLeft
	y := t.Y + t.MarginTop + int(size)
	for _, line := range t.Lines() {
		c.DrawText(line, x, y, size, t.Foreground)
		y += step
	}
}

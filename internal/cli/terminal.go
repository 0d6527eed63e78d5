package cli

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Terminal describes what the attached terminal can do
type Terminal struct {
	InputIsTerminal  bool
	OutputIsTerminal bool
	UseColor         bool
}

// NewTerminal inspects stdin and stdout
func NewTerminal() *Terminal {
	out := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		InputIsTerminal:  term.IsTerminal(int(os.Stdin.Fd())),
		OutputIsTerminal: out,
		UseColor:         out && !color.NoColor, // Only use color in terminal
	}
}

// Interactive reports whether line editing should be used
func (t *Terminal) Interactive() bool {
	return t.InputIsTerminal && t.OutputIsTerminal
}

// Paint renders text with the given attributes when color is enabled
func (t *Terminal) Paint(text string, attrs ...color.Attribute) string {
	if !t.UseColor {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

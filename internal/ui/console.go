package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const clearScreen = "\x1b[H\x1b[2J"

// Console writes rendered output to a terminal or any writer.
type Console struct {
	out      io.Writer
	renderer *Renderer
	tty      bool
}

func NewConsole(out io.Writer, renderer *Renderer) *Console {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Console{out: out, renderer: renderer, tty: tty}
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) Banner() {
	c.print(c.renderer.Welcome())
}

func (c *Console) Farewell() {
	c.print(c.renderer.Farewell())
}

func (c *Console) User(content string) {
	c.print(c.renderer.User(content))
}

func (c *Console) Assistant(content string) {
	c.print(c.renderer.Assistant(content))
}

func (c *Console) Info(msg string) {
	c.print(c.renderer.System(msg))
}

func (c *Console) Warn(msg string) {
	c.print(c.renderer.Warning(msg))
}

func (c *Console) Error(header string, err error) {
	c.print(c.renderer.Error(header, err))
}

// Clear wipes the visible screen. Output that is not a terminal is left
// alone so redirected transcripts stay readable.
func (c *Console) Clear() {
	if c.tty {
		c.print(clearScreen)
	}
}

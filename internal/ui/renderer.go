package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns messages into ANSI-styled strings for the scrollback.
type Renderer struct {
	theme Theme
	md    *glamour.TermRenderer
	width int
}

// NewRenderer creates a renderer. style is a glamour style name; "auto"
// picks dark or light from the terminal background.
func NewRenderer(theme Theme, width int, style string) (*Renderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	md, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width-4), // panel border and padding
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{theme: theme, md: md, width: width}, nil
}

// User renders a user message as plain text
func (r *Renderer) User(content string) string {
	prefix := r.theme.UserPrefix.Render("You:")
	return prefix + " " + r.theme.UserContent.Render(content) + "\n"
}

// Assistant renders an assistant reply as Markdown inside a panel. If the
// Markdown renderer fails the raw text is shown instead.
func (r *Renderer) Assistant(content string) string {
	body, err := r.md.Render(content)
	if err != nil {
		body = content
	}
	body = strings.Trim(body, "\n")
	header := r.theme.AssistantHeader.Render("Assistant")
	return r.theme.AssistantPanel.Width(r.width-2).Render(header+"\n"+body) + "\n"
}

// System renders an informational line
func (r *Renderer) System(content string) string {
	return r.theme.SystemMessage.Render(content) + "\n"
}

func (r *Renderer) Warning(content string) string {
	return r.theme.WarningMessage.Render(content) + "\n"
}

// Error renders a failure with a short header and the error text
func (r *Renderer) Error(header string, err error) string {
	return r.theme.ErrorHeader.Render(header) + "\n" + r.theme.ErrorMessage.Render(err.Error()) + "\n"
}

// Welcome renders the banner shown when the REPL starts
func (r *Renderer) Welcome() string {
	return r.theme.Title.Render("Ask Repl") + "\n" + r.theme.Hint.Render("type `exit` to quit, `help` for commands") + "\n"
}

func (r *Renderer) Farewell() string {
	return "Bye!\n"
}

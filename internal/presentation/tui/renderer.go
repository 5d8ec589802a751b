package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Interactive reports whether stdin and stdout are attached to a terminal.
// Piped input falls back to plain text output.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewRenderer returns a function that renders bot responses for the
// terminal. Responses containing flight tables are monospace already, so the
// renderer wraps them in a fenced block before handing them to glamour. When
// the output is not a terminal it returns text unchanged.
func NewRenderer() func(string) string {
	if !Interactive() {
		return func(text string) string { return text }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(text string) string { return text }
	}

	return func(text string) string {
		md := text
		if strings.Contains(text, "------") {
			md = "```\n" + text + "\n```"
		}
		out, err := r.Render(md)
		if err != nil {
			return text
		}
		return out
	}
}

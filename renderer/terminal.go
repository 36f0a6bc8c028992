package renderer

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the terminal width used by Terminal.
const DefaultWordWrap = 120

// Terminal renders markdown for display in a terminal, in a style matching
// the terminal background.
func Terminal(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultWordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("cannot create terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return out, nil
}

package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/sandevgo/motivate/pkg/conv"
)

// Renderer turns a markdown reply into terminal output.
type Renderer interface {
	Render(md string) string
}

type glamourRenderer struct {
	tr *glamour.TermRenderer
}

func (g glamourRenderer) Render(md string) string {
	out, err := g.tr.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

type plainRenderer struct{}

func (plainRenderer) Render(md string) string {
	out, err := conv.MarkdownToPlain(md)
	if err != nil || out == "" {
		return md
	}
	return out
}

// NewRenderer styles replies with glamour, or flattens them to plain text when color
// is off or glamour cannot start.
func NewRenderer(color bool, width int) Renderer {
	if !color {
		return plainRenderer{}
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return plainRenderer{}
	}
	return glamourRenderer{tr: tr}
}

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"curriculum-backend/internal/curriculum"
)

// Markdown renders v as a Markdown document.
func Markdown(v curriculum.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Heading(v))
	if v.Empty() {
		fmt.Fprintf(&b, "_%s_\n", curriculum.EmptyMessage)
		return b.String()
	}
	for _, g := range v.Groups {
		fmt.Fprintf(&b, "## %s\n\n", TierHeading(g.Tier))
		for _, topic := range g.Topics {
			fmt.Fprintf(&b, "- %s\n", topic)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**%s**\n", TotalLine(v))
	return b.String()
}

// Glamour renders the Markdown form of v for a terminal. style is a glamour
// standard style name ("dark", "light", "notty", ...); empty means auto-detect.
func Glamour(v curriculum.View, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("build markdown renderer: %w", err)
	}
	out, err := r.Render(Markdown(v))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Package render turns a curriculum.View into text, Markdown, or HTML.
// Every format shows tier groups in display order and a trailing total,
// and an explicit empty-state message when nothing was recommended.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"curriculum-backend/internal/curriculum"
)

// Heading returns the title line for a view.
func Heading(v curriculum.View) string {
	if v.Empty() {
		return fmt.Sprintf("Resultados para o %dº Semestre", v.Semester)
	}
	return fmt.Sprintf("Conteúdos Recomendados - %dº Semestre", v.Semester)
}

// TierHeading labels a tier group.
func TierHeading(t curriculum.TierName) string {
	return "Nível " + t.Title()
}

// TotalLine is the trailing count shown under the groups.
func TotalLine(v curriculum.View) string {
	return fmt.Sprintf("Total de %d conteúdos recomendados", v.Total)
}

// Text renders v without any styling.
func Text(v curriculum.View) string {
	var b strings.Builder
	b.WriteString(Heading(v))
	b.WriteString("\n\n")
	if v.Empty() {
		b.WriteString(curriculum.EmptyMessage)
		b.WriteString("\n")
		return b.String()
	}
	for _, g := range v.Groups {
		b.WriteString(TierHeading(g.Tier))
		b.WriteString("\n")
		for _, topic := range g.Topics {
			b.WriteString("  - ")
			b.WriteString(topic)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(TotalLine(v))
	b.WriteString("\n")
	return b.String()
}

var tierColors = map[curriculum.TierName]lipgloss.Color{
	curriculum.TierIniciante:     lipgloss.Color("#99f2ad"),
	curriculum.TierIntermediario: lipgloss.Color("#f5d984"),
	curriculum.TierAvancado:      lipgloss.Color("#fc7481"),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0058d1")).MarginBottom(1)
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#666666"))
	totalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0056b3")).MarginTop(1)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	checkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#28a745"))
)

// Styled renders v for a terminal with lipgloss, one colored border per tier.
func Styled(v curriculum.View) string {
	if v.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(Heading(v)),
			emptyStyle.Render(curriculum.EmptyMessage),
		)
	}
	blocks := []string{titleStyle.Render(Heading(v))}
	for _, g := range v.Groups {
		lines := []string{lipgloss.NewStyle().Bold(true).Render(TierHeading(g.Tier))}
		for _, topic := range g.Topics {
			lines = append(lines, itemStyle.Render(checkStyle.Render("✓")+" "+topic))
		}
		box := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(tierColors[g.Tier]).
			PaddingLeft(1).
			MarginBottom(1)
		blocks = append(blocks, box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	blocks = append(blocks, totalStyle.Render(TotalLine(v)))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

package main

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#758696"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDD"))
	boxStyle   = lipgloss.NewStyle().
			Background(lipgloss.Color("#1E1E1E")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2B2B2B")).
			Padding(0, 1)
)

type legendLine struct {
	Text  string
	Color string
}

// parseLegend extracts the text and inline color of every legend region.
// Empty regions yield an empty line.
func parseLegend(regions []string) ([]legendLine, error) {
	lines := make([]legendLine, 0, len(regions))
	for _, html := range regions {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, err
		}
		sel := doc.Find("div").First()
		line := legendLine{Text: strings.TrimSpace(sel.Text())}
		if style, ok := sel.Attr("style"); ok {
			line.Color = styleColor(style)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func styleColor(style string) string {
	for _, decl := range strings.Split(style, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) == 2 && strings.TrimSpace(kv[0]) == "color" {
			return strings.TrimSpace(kv[1])
		}
	}
	return ""
}

func renderLegend(lines []legendLine) string {
	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Text == "" {
			rendered = append(rendered, labelStyle.Render("-"))
			continue
		}
		style := valueStyle
		if l.Color != "" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color))
		}
		rendered = append(rendered, style.Render(l.Text))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rendered...))
}

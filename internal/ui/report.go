// Package ui renders a usage report for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"

	"github.com/j-veylop/reportbot/internal/models"
	"github.com/j-veylop/reportbot/internal/ui/components"
	"github.com/j-veylop/reportbot/internal/ui/styles"
)

const (
	// DefaultWidth is used when the terminal width is unknown.
	DefaultWidth = 60
	minWidth     = 30

	maxLabelWidth = 18
	countWidth    = 7
	// border + padding on both sides
	cardChrome = 4
)

// Render draws the users and usages sections for labels in order.
// Labels absent from the report render as zero. Services present in the
// data but not in labels are listed in a footer.
func Render(r models.Report, labels []string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	width = max(width, minWidth)

	sections := []string{
		styles.TitleStyle.Render("Usage report"),
		section("Users", r.TotalUsers, r.UsersPerService, labels, width),
		section("Usages", r.TotalUsages, r.UsagesPerService, labels, width),
	}
	if extra := lo.Without(r.Services(), labels...); len(extra) > 0 {
		note := ansi.Truncate("Not in report: "+strings.Join(extra, ", "), width, "…")
		sections = append(sections, styles.MutedStyle.Render(note))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderError formats a failed report for the terminal.
func RenderError(err error) string {
	return styles.ErrorTextStyle.Render("✗ " + err.Error())
}

func section(title string, total int, perService map[string]int, labels []string, width int) string {
	inner := width - cardChrome
	labelWidth := min(maxLabelWidth, longest(labels))
	barWidth := max(inner-labelWidth-countWidth-2, 1)

	header := styles.CardTitleStyle.Render(title) + " " + styles.TotalStyle.Render(fmt.Sprintf("%d", total))

	lines := []string{header}
	for _, label := range labels {
		n := perService[label]
		name := ansi.Truncate(label, labelWidth, "…")
		lines = append(lines, fmt.Sprintf("%s %s%s",
			styles.LabelStyle.Width(labelWidth).Render(name),
			components.ShareBar(n, total, barWidth),
			styles.CountStyleFor(n).Width(countWidth).Render(fmt.Sprintf("%d", n)),
		))
	}
	if len(labels) == 0 {
		lines = append(lines, styles.MutedStyle.Render("no services configured"))
	}

	return styles.CardStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func longest(labels []string) int {
	n := 1
	for _, l := range labels {
		n = max(n, ansi.StringWidth(l))
	}
	return n
}

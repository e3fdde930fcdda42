// Package components provides reusable rendering pieces for the terminal report.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/reportbot/internal/ui/styles"
)

// ShareBar renders value/total as a gradient bar of width cells.
// A zero total renders an empty track.
func ShareBar(value, total, width int) string {
	if width < 1 {
		return ""
	}

	var ratio float64
	if total > 0 {
		ratio = float64(value) / float64(total)
	}
	filled := min(max(int(float64(width)*ratio+0.5), 0), width)
	if value > 0 && filled == 0 {
		filled = 1
	}

	var b strings.Builder
	for i := range width {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor(styles.BarFrom, styles.BarTo, t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
		}
	}
	return b.String()
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}

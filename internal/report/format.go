package report

import (
	"strconv"
	"strings"

	"github.com/j-veylop/reportbot/internal/models"
)

// Render formats r as two monospace blocks, users then usages, listing
// labels in the given order. Every label must be present in both mappings.
//
// The output is Telegram MarkdownV2: each block is one inline code span.
func Render(r models.Report, labels []string) (string, error) {
	users, err := renderBlock("Total Users", r.TotalUsers, r.UsersPerService, labels, "users")
	if err != nil {
		return "", err
	}
	usages, err := renderBlock("Total Usages", r.TotalUsages, r.UsagesPerService, labels, "usages")
	if err != nil {
		return "", err
	}
	return users + "\n\n" + usages, nil
}

func renderBlock(heading string, total int, perService map[string]int, labels []string, aggregate string) (string, error) {
	lines := make([]string, 0, len(labels)+1)
	lines = append(lines, heading+": "+strconv.Itoa(total))
	for _, label := range labels {
		n, ok := perService[label]
		if !ok {
			return "", &MissingServiceDataError{Service: label, Aggregate: aggregate}
		}
		lines = append(lines, " -"+escapeCode(label)+": "+strconv.Itoa(n))
	}
	return "`" + strings.Join(lines, " \n") + "`", nil
}

var codeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")

// escapeCode escapes the characters MarkdownV2 reserves inside code spans.
func escapeCode(s string) string {
	return codeEscaper.Replace(s)
}

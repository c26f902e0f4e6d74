package scoring

import (
	"fmt"
	"strings"
)

var generalTips = []string{
	"Tailor your CV to the specific job you're applying for",
	"Use a clean, professional font and consistent formatting",
	"Proofread carefully for spelling and grammar errors",
	"Keep your CV to 1-2 pages maximum",
}

// RenderSuggestions formats a report as Markdown, one heading per dimension
// with suggestions, followed by job keyword advice and general tips.
func RenderSuggestions(report ScoreReport) string {
	var b strings.Builder

	b.WriteString("## Improvement Suggestions\n\n")

	for _, d := range report.Breakdown {
		if len(d.Suggestions) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s Section:\n", d.Dimension.Title())
		writeBullets(&b, d.Suggestions)
		b.WriteString("\n")
	}

	if len(report.JobSuggestions) > 0 {
		b.WriteString("### Job Keywords:\n")
		writeBullets(&b, report.JobSuggestions)
		b.WriteString("\n")
	}

	b.WriteString("### General Tips:\n")
	writeBullets(&b, generalTips)

	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

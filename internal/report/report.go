package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dgallion1/docredact/internal/pipeline"
)

// Build renders the markdown audit report for one finished job.
func Build(snap pipeline.JobSnapshot, pages []pipeline.PageRecords) string {
	var b strings.Builder

	b.WriteString("# Redaction report\n\n")
	fmt.Fprintf(&b, "- **Job**: %s\n", snap.ID)
	fmt.Fprintf(&b, "- **Document**: %s\n", escapeCell(snap.Filename))
	fmt.Fprintf(&b, "- **Status**: %s\n", snap.Status)
	fmt.Fprintf(&b, "- **Words**: %d across %d pages\n", snap.Progress.Words, snap.Progress.Pages)
	fmt.Fprintf(&b, "- **Phrases checked**: %d\n", snap.Progress.Phrases)
	fmt.Fprintf(&b, "- **Matches**: %d\n", snap.Progress.Matches)

	writeLabelCounts(&b, pages)
	for _, page := range pages {
		writePage(&b, page)
	}

	if len(snap.Progress.Errors) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, e := range snap.Progress.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	return b.String()
}

func writeLabelCounts(b *strings.Builder, pages []pipeline.PageRecords) {
	counts := map[string]int{}
	for _, page := range pages {
		for _, rec := range page.Records {
			counts[rec.Label]++
		}
	}
	if len(counts) == 0 {
		return
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	b.WriteString("\n## Matches by label\n\n| Label | Count |\n|---|---|\n")
	for _, label := range labels {
		fmt.Fprintf(b, "| %s | %d |\n", escapeCell(label), counts[label])
	}
}

func writePage(b *strings.Builder, page pipeline.PageRecords) {
	fmt.Fprintf(b, "\n## Page %d\n\n", page.Page)
	if len(page.Records) == 0 {
		b.WriteString("No matches.\n")
		return
	}
	b.WriteString("| ID | Label | Text | Type | Confidence |\n|---|---|---|---|---|\n")
	for _, rec := range page.Records {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %.2f |\n",
			rec.ID, escapeCell(rec.Label), escapeCell(rec.Text), rec.MatchType, rec.Confidence)
	}
}

// escapeCell keeps matched text from breaking table syntax.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

const htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Redaction report</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.25rem 0.5rem; text-align: left; }
</style>
</head>
<body>
`

const htmlFooter = "</body>\n</html>\n"

// ToHTML converts the markdown report for browser consumption. Raw HTML in
// matched text is not passed through.
func ToHTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert report: %w", err)
	}
	return htmlHeader + buf.String() + htmlFooter, nil
}

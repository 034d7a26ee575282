// Package fragment renders scanned portfolio years into the HTML snippet that
// gets injected into the gallery page.
package fragment

import (
	"strings"

	"github.com/Nomadcxx/artpop/internal/portfolio"
)

// DefaultPrefix is the href prefix placed before "{year}/{file}".
const DefaultPrefix = "images/portfolio/"

const (
	indent     = "\t\t\t\t"
	itemIndent = indent + "\t"
	listOpen   = `<ul style="list-style-type: none; padding: 0;">`
)

// YearBlock renders one year heading and its file list. Lines are joined with
// "\n" and there is no trailing newline.
func YearBlock(prefix, year string, files []portfolio.MediaFile) string {
	var sb strings.Builder

	sb.WriteString(indent + "<h2>" + year + "</h2>\n")
	sb.WriteString(indent + listOpen + "\n")
	for _, f := range files {
		sb.WriteString(itemIndent)
		sb.WriteString(`<li><a href="`)
		sb.WriteString(prefix + year + "/" + EscapePath(f.Name))
		sb.WriteString(`">`)
		sb.WriteString(EscapeText(f.Name))
		sb.WriteString("</a></li>\n")
	}
	sb.WriteString(indent + "</ul>")

	return sb.String()
}

// Build renders every year that has files, separated by a blank line and
// terminated by a newline. It returns "" when there is nothing to publish.
func Build(prefix string, years []portfolio.YearDirectory) string {
	var blocks []string
	for _, y := range years {
		if len(y.Files) == 0 {
			continue
		}
		blocks = append(blocks, YearBlock(prefix, y.Name, y.Files))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

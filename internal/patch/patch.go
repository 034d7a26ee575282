// Package patch splices a generated fragment into an HTML document.
//
// The document is treated as plain text. Only the marker span (or the point
// right after the first <main> opening tag) is touched, so everything else
// passes through byte for byte, malformed markup included.
package patch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrAnchorNotFound is returned when a document has neither a marker pair nor
// an opening tag to insert after.
var ErrAnchorNotFound = errors.New("anchor not found")

// AnchorTag names the opening tag a fresh fragment is inserted after.
const AnchorTag = "<main>"

// mainOpenRe matches "<main" followed by ">" or by a character that cannot
// continue a tag name. RE2's \b only knows ASCII word characters, so letters
// and digits from any script are excluded explicitly ("<mainé>" is not <main>).
var mainOpenRe = regexp.MustCompile(`(?i)<main(?:[^\p{L}\p{N}_>][^>]*)?>`)

// Markers delimit the generated region
type Markers struct {
	Begin string
	End   string
}

// DefaultMarkers are the HTML comments wrapped around generated content
var DefaultMarkers = Markers{
	Begin: "<!-- BEGIN AUTO-GENERATED ART -->",
	End:   "<!-- END AUTO-GENERATED ART -->",
}

// Mode describes what Apply did to the document
type Mode int

const (
	ModeUnchanged Mode = iota
	ModeReplaced
	ModeInserted
)

func (m Mode) String() string {
	switch m {
	case ModeUnchanged:
		return "unchanged"
	case ModeReplaced:
		return "replaced"
	case ModeInserted:
		return "inserted"
	default:
		return "unknown"
	}
}

// Result is the patched document text and how it was produced
type Result struct {
	Text string
	Mode Mode
}

// Patcher applies fragments for one marker pair
type Patcher struct {
	markers Markers
	span    *regexp.Regexp
}

// New compiles a patcher for the given markers
func New(m Markers) *Patcher {
	return &Patcher{
		markers: m,
		span:    regexp.MustCompile(`(?s)` + regexp.QuoteMeta(m.Begin) + `.*?` + regexp.QuoteMeta(m.End)),
	}
}

// HasMarkers reports whether both marker literals appear anywhere in doc
func (p *Patcher) HasMarkers(doc string) bool {
	return strings.Contains(doc, p.markers.Begin) && strings.Contains(doc, p.markers.End)
}

// Apply returns doc with fragment spliced in. An empty fragment leaves doc
// untouched. When a marker pair exists only the first span is replaced;
// otherwise the fragment is inserted after the first <main ...> tag.
func (p *Patcher) Apply(doc, fragment string) (Result, error) {
	if fragment == "" {
		return Result{Text: doc, Mode: ModeUnchanged}, nil
	}

	if p.HasMarkers(doc) {
		loc := p.span.FindStringIndex(doc)
		if loc == nil {
			// END only appears before BEGIN; there is no span to replace.
			return Result{Text: doc, Mode: ModeUnchanged}, nil
		}
		var sb strings.Builder
		sb.Grow(len(doc) + len(fragment))
		sb.WriteString(doc[:loc[0]])
		sb.WriteString(p.wrap(fragment))
		sb.WriteString(doc[loc[1]:])
		return Result{Text: sb.String(), Mode: ModeReplaced}, nil
	}

	loc := mainOpenRe.FindStringIndex(doc)
	if loc == nil {
		return Result{}, fmt.Errorf("could not find a %s tag: %w", AnchorTag, ErrAnchorNotFound)
	}

	var sb strings.Builder
	sb.Grow(len(doc) + len(fragment) + len(p.markers.Begin) + len(p.markers.End) + 3)
	sb.WriteString(doc[:loc[1]])
	sb.WriteString("\n")
	sb.WriteString(p.wrap(fragment))
	sb.WriteString("\n")
	sb.WriteString(doc[loc[1]:])
	return Result{Text: sb.String(), Mode: ModeInserted}, nil
}

func (p *Patcher) wrap(fragment string) string {
	return p.markers.Begin + "\n" + fragment + p.markers.End
}

// Block returns the text between the first marker pair, excluding the markers
func (p *Patcher) Block(doc string) (string, bool) {
	loc := p.span.FindStringIndex(doc)
	if loc == nil {
		return "", false
	}
	return doc[loc[0]+len(p.markers.Begin) : loc[1]-len(p.markers.End)], true
}

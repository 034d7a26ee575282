// Package inspect reads back the entries already published in a document's
// generated block, so a page can be compared against the filesystem.
package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Nomadcxx/artpop/internal/fragment"
	"github.com/Nomadcxx/artpop/internal/patch"
	"github.com/Nomadcxx/artpop/internal/portfolio"
)

// Entry is one published link
type Entry struct {
	Year     string
	Filename string
	Href     string
}

// key identifies an entry for Diff. Href is part of it so a changed link
// prefix shows up as stale.
func (e Entry) key() string {
	return e.Year + "/" + e.Filename + "\x00" + e.Href
}

func (e Entry) String() string {
	return e.Year + "/" + e.Filename
}

// Read parses the first generated block in doc. The second return value is
// false when doc has no marker pair.
func Read(doc string, p *patch.Patcher) ([]Entry, bool, error) {
	block, ok := p.Block(doc)
	if !ok {
		return nil, false, nil
	}

	entries, err := Parse(block)
	if err != nil {
		return nil, true, err
	}
	return entries, true, nil
}

// Parse extracts entries from fragment HTML: each <h2> names a year and the
// <ul> right after it holds that year's links.
func Parse(block string) ([]Entry, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(block))
	if err != nil {
		return nil, fmt.Errorf("unable to parse generated block: %w", err)
	}

	var entries []Entry
	d.Find("h2").Each(func(_ int, h *goquery.Selection) {
		year := strings.TrimSpace(h.Text())
		h.NextFiltered("ul").Find("li a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			entries = append(entries, Entry{
				Year:     year,
				Filename: a.Text(),
				Href:     href,
			})
		})
	})

	return entries, nil
}

// FromScan lists the entries a scan would publish
func FromScan(prefix string, years []portfolio.YearDirectory) []Entry {
	var entries []Entry
	for _, y := range years {
		for _, f := range y.Files {
			entries = append(entries, Entry{
				Year:     y.Name,
				Filename: f.Name,
				Href:     prefix + y.Name + "/" + fragment.EscapePath(f.Name),
			})
		}
	}
	return entries
}

// Diff returns entries in want but not in have (missing) and entries in have
// but not in want (extra). Both results are sorted by year then filename.
func Diff(want, have []Entry) (missing, extra []Entry) {
	haveSet := make(map[string]bool, len(have))
	for _, e := range have {
		haveSet[e.key()] = true
	}
	wantSet := make(map[string]bool, len(want))
	for _, e := range want {
		wantSet[e.key()] = true
		if !haveSet[e.key()] {
			missing = append(missing, e)
		}
	}
	for _, e := range have {
		if !wantSet[e.key()] {
			extra = append(extra, e)
		}
	}

	sortEntries(missing)
	sortEntries(extra)
	return missing, extra
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year < entries[j].Year
		}
		return entries[i].Filename < entries[j].Filename
	})
}

package populate

import (
	"fmt"

	"github.com/Nomadcxx/artpop/internal/inspect"
	"github.com/Nomadcxx/artpop/internal/logging"
)

// CheckResult compares the published block with the portfolio on disk
type CheckResult struct {
	Document  string
	HasBlock  bool
	Published []inspect.Entry
	Missing   []inspect.Entry // on disk, not in the document
	Extra     []inspect.Entry // in the document, not on disk
}

// Stale reports whether a populate run would change the published entries
func (c *CheckResult) Stale() bool {
	return len(c.Missing) > 0 || len(c.Extra) > 0
}

// Check reads the document's generated block and diffs it against a fresh
// scan. It never writes.
func (r *Runner) Check() (*CheckResult, error) {
	doc, _, err := r.readDocument()
	if err != nil {
		return nil, err
	}

	years, err := r.Scan()
	if err != nil {
		return nil, err
	}

	published, hasBlock, err := inspect.Read(doc, r.patcher)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated block in %s: %w", r.opts.Document, err)
	}

	want := inspect.FromScan(r.opts.HrefPrefix, years)
	missing, extra := inspect.Diff(want, published)

	result := &CheckResult{
		Document:  r.opts.Document,
		HasBlock:  hasBlock,
		Published: published,
		Missing:   missing,
		Extra:     extra,
	}

	r.logger.Debug("check", "compared generated block",
		logging.F("document", r.opts.Document),
		logging.F("has_block", hasBlock),
		logging.F("missing", len(missing)),
		logging.F("extra", len(extra)))

	return result, nil
}

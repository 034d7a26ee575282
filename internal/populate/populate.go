// Package populate runs the scan, build and patch steps against the gallery
// page and writes the result back with a single-generation backup.
package populate

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/Nomadcxx/artpop/internal/fragment"
	"github.com/Nomadcxx/artpop/internal/logging"
	"github.com/Nomadcxx/artpop/internal/patch"
	"github.com/Nomadcxx/artpop/internal/portfolio"
	"github.com/Nomadcxx/artpop/internal/ui"
)

var (
	// ErrMissingDocument is returned when the target document does not exist
	ErrMissingDocument = errors.New("not found")

	// ErrStale is returned by Check when the published block differs from disk
	ErrStale = errors.New("generated block is out of date")
)

// Options configures a Runner
type Options struct {
	Document     string
	PortfolioDir string
	HrefPrefix   string
	BackupSuffix string
	Extensions   []string
	Markers      patch.Markers
	FileMode     os.FileMode // 0 keeps the document's current mode
	DryRun       bool
}

// DefaultOptions mirrors the defaults of the config package
func DefaultOptions() Options {
	return Options{
		Document:     "art.html",
		PortfolioDir: "images/portfolio",
		HrefPrefix:   fragment.DefaultPrefix,
		BackupSuffix: ".bak",
		Extensions:   portfolio.DefaultExtensions,
		Markers:      patch.DefaultMarkers,
	}
}

// Result summarizes a run
type Result struct {
	Document string
	Backup   string
	Mode     patch.Mode
	Injected bool
	Changed  bool
	DryRun   bool
	Years    int
	Files    int
	Size     int64
}

// StatusLine is the one-line summary printed after a successful run
func (r *Result) StatusLine() string {
	verb := "Updated"
	if r.DryRun {
		verb = "Would update"
	}
	content := "no"
	if r.Injected {
		content = "with"
	}
	return fmt.Sprintf("%s %s (%s content).", verb, r.Document, content)
}

// Runner performs a populate pass over a filesystem
type Runner struct {
	fs      afero.Fs
	opts    Options
	logger  *logging.Logger
	scanner *portfolio.Scanner
	patcher *patch.Patcher
}

// New creates a Runner. A nil logger discards log output.
func New(fs afero.Fs, opts Options, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{
		fs:      fs,
		opts:    opts,
		logger:  logger,
		scanner: portfolio.NewScanner(fs, portfolio.WithExtensions(opts.Extensions)),
		patcher: patch.New(opts.Markers),
	}
}

// BackupPath returns the sibling path the original document is copied to
func (r *Runner) BackupPath() string {
	return r.opts.Document + r.opts.BackupSuffix
}

// Scan returns the year directories under the portfolio directory
func (r *Runner) Scan() ([]portfolio.YearDirectory, error) {
	years, err := r.scanner.Scan(r.opts.PortfolioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", r.opts.PortfolioDir, err)
	}
	yearCount, fileCount := portfolio.Stats(years)
	r.logger.Debug("scan", "scanned portfolio",
		logging.F("dir", r.opts.PortfolioDir),
		logging.F("years", yearCount),
		logging.F("files", fileCount),
		logging.F("skipped_years", len(years)-yearCount))
	return years, nil
}

// readDocument loads the target document, failing with ErrMissingDocument
// when it is absent.
func (r *Runner) readDocument() (string, os.FileInfo, error) {
	info, err := r.fs.Stat(r.opts.Document)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%s: %w", r.opts.Document, ErrMissingDocument)
		}
		return "", nil, fmt.Errorf("cannot access %s: %w", r.opts.Document, err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%s: %w (is a directory)", r.opts.Document, ErrMissingDocument)
	}

	data, err := afero.ReadFile(r.fs, r.opts.Document)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", r.opts.Document, err)
	}
	return string(data), info, nil
}

// Run performs one populate pass. Every failure is detected before anything
// is written; the backup is written before the document.
func (r *Runner) Run() (*Result, error) {
	original, info, err := r.readDocument()
	if err != nil {
		return nil, err
	}

	years, err := r.Scan()
	if err != nil {
		return nil, err
	}
	payload := fragment.Build(r.opts.HrefPrefix, years)

	patched, err := r.patcher.Apply(original, payload)
	if err != nil {
		r.logger.Error("patch", "no insertion point", err, logging.F("document", r.opts.Document))
		return nil, err
	}

	if payload != "" && patched.Mode == patch.ModeUnchanged {
		r.logger.Warn("patch", "markers present but not in BEGIN...END order, block not updated",
			logging.F("document", r.opts.Document))
	}

	yearCount, fileCount := portfolio.Stats(years)
	result := &Result{
		Document: r.opts.Document,
		Backup:   r.BackupPath(),
		Mode:     patched.Mode,
		Injected: payload != "",
		Changed:  patched.Text != original,
		DryRun:   r.opts.DryRun,
		Years:    yearCount,
		Files:    fileCount,
		Size:     int64(len(patched.Text)),
	}

	if r.opts.DryRun {
		r.logger.Info("populate", "dry run, nothing written",
			logging.F("document", r.opts.Document),
			logging.F("mode", patched.Mode))
		return result, nil
	}

	mode := r.opts.FileMode
	if mode == 0 {
		mode = info.Mode().Perm()
	}

	if err := afero.WriteFile(r.fs, result.Backup, []byte(original), mode); err != nil {
		return nil, fmt.Errorf("failed to write backup %s: %w", result.Backup, err)
	}
	if err := afero.WriteFile(r.fs, r.opts.Document, []byte(patched.Text), mode); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", r.opts.Document, err)
	}
	if r.opts.FileMode != 0 {
		// WriteFile only applies the mode on create
		if err := r.fs.Chmod(r.opts.Document, r.opts.FileMode); err != nil {
			return nil, fmt.Errorf("failed to chmod %s: %w", r.opts.Document, err)
		}
	}

	r.logger.Info("populate", "document written",
		logging.F("document", r.opts.Document),
		logging.F("backup", result.Backup),
		logging.F("mode", patched.Mode),
		logging.F("changed", result.Changed),
		logging.F("size", ui.FormatBytes(result.Size)))

	return result, nil
}

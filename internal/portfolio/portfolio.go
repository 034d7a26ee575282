// Package portfolio discovers year directories and the media files inside them.
package portfolio

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// DefaultExtensions lists the file extensions published in the gallery.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg", ".pdf"}

// MediaFile is a single publishable file inside a year directory.
type MediaFile struct {
	Name string
}

// YearDirectory is a directory whose name is made of decimal digits only.
type YearDirectory struct {
	Name  string
	Files []MediaFile
}

// Scanner walks a portfolio base directory
type Scanner struct {
	fs         afero.Fs
	extensions map[string]bool
}

// Option configures a Scanner
type Option func(*Scanner)

// WithExtensions replaces the extension allow-list. Entries are matched
// case-insensitively and may be given with or without the leading dot.
func WithExtensions(exts []string) Option {
	return func(s *Scanner) {
		s.extensions = extensionSet(exts)
	}
}

// NewScanner creates a scanner over fs using the default allow-list
func NewScanner(fs afero.Fs, opts ...Option) *Scanner {
	s := &Scanner{
		fs:         fs,
		extensions: extensionSet(DefaultExtensions),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// Scan returns the year directories directly under base in ascending numeric
// order. A missing base yields an empty result. Years with no eligible files
// are still returned, with empty Files.
func (s *Scanner) Scan(base string) ([]YearDirectory, error) {
	exists, err := afero.DirExists(s.fs, base)
	if err != nil {
		return nil, fmt.Errorf("unable to stat %s: %w", base, err)
	}
	if !exists {
		return nil, nil
	}

	entries, err := afero.ReadDir(s.fs, base)
	if err != nil {
		return nil, fmt.Errorf("unable to list %s: %w", base, err)
	}

	var years []YearDirectory
	for _, entry := range entries {
		if !IsYearName(entry.Name()) {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		if !s.isDir(dir) {
			continue
		}
		files, err := s.listFiles(dir)
		if err != nil {
			return nil, err
		}
		years = append(years, YearDirectory{Name: entry.Name(), Files: files})
	}

	sort.SliceStable(years, func(i, j int) bool {
		return lessNumeric(years[i].Name, years[j].Name)
	})

	return years, nil
}

// listFiles returns the eligible files directly inside dir, sorted by name
func (s *Scanner) listFiles(dir string) ([]MediaFile, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !s.IsEligible(entry.Name()) {
			continue
		}
		if !s.isRegular(filepath.Join(dir, entry.Name())) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]MediaFile, 0, len(names))
	for _, name := range names {
		files = append(files, MediaFile{Name: name})
	}
	return files, nil
}

// IsEligible reports whether a filename passes the hidden-file and extension
// filters. It does not look at the filesystem.
func (s *Scanner) IsEligible(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// isDir follows symlinks, matching how the directory is served
func (s *Scanner) isDir(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (s *Scanner) isRegular(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsYearName reports whether name consists solely of ASCII decimal digits
func IsYearName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// lessNumeric compares two digit strings by value without converting them,
// so names longer than an int64 still order correctly.
func lessNumeric(a, b string) bool {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		return len(ta) < len(tb)
	}
	if ta != tb {
		return ta < tb
	}
	return a < b
}

// NonEmpty filters out years without eligible files
func NonEmpty(years []YearDirectory) []YearDirectory {
	var out []YearDirectory
	for _, y := range years {
		if len(y.Files) > 0 {
			out = append(out, y)
		}
	}
	return out
}

// Stats counts non-empty years and files
func Stats(years []YearDirectory) (yearCount, fileCount int) {
	for _, y := range years {
		if len(y.Files) == 0 {
			continue
		}
		yearCount++
		fileCount += len(y.Files)
	}
	return yearCount, fileCount
}

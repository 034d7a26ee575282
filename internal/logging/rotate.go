package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// rotatingFile appends to path and rolls it over to path.1 once it has
// reached maxSize bytes.
type rotatingFile struct {
	path       string
	maxSize    int64
	maxBackups int
	f          *os.File
}

func openRotating(path string, maxSize int64, maxBackups int) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	r := &rotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	r.f = f
	return nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	if info, err := r.f.Stat(); err == nil && info.Size() >= r.maxSize {
		r.f.Close()
		rotErr := rotateFiles(r.path, r.maxBackups)
		// Reopen even when rotation failed so later lines still land somewhere
		if err := r.open(); err != nil {
			return 0, errors.Join(rotErr, err)
		}
		if rotErr != nil {
			return 0, rotErr
		}
	}
	return r.f.Write(p)
}

func (r *rotatingFile) Close() error {
	return r.f.Close()
}

// rotateFiles shifts name.N.ext to name.N+1.ext, drops anything at or past
// maxBackups, and moves the live file to name.1.ext.
func rotateFiles(basePath string, maxBackups int) error {
	dir := filepath.Dir(basePath)
	ext := filepath.Ext(basePath)
	name := strings.TrimSuffix(filepath.Base(basePath), ext)

	backupPath := func(n int) string {
		return filepath.Join(dir, name+"."+strconv.Itoa(n)+ext)
	}

	backups, err := findBackups(dir, name, ext)
	if err != nil {
		return err
	}

	// Highest first so renames never collide
	slices.Sort(backups)
	slices.Reverse(backups)

	for _, n := range backups {
		if n >= maxBackups {
			if err := os.Remove(backupPath(n)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to drop old log %s: %w", backupPath(n), err)
			}
			continue
		}
		if err := os.Rename(backupPath(n), backupPath(n+1)); err != nil {
			return fmt.Errorf("failed to rotate %s: %w", backupPath(n), err)
		}
	}

	if _, err := os.Stat(basePath); err == nil {
		if err := os.Rename(basePath, backupPath(1)); err != nil {
			return fmt.Errorf("failed to rotate current log: %w", err)
		}
	}

	return nil
}

// findBackups returns the N of every name.N.ext file in dir
func findBackups(dir, name, ext string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backups []int
	prefix := name + "."
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		numStr, ok := strings.CutPrefix(entry.Name(), prefix)
		if !ok {
			continue
		}
		numStr, ok = strings.CutSuffix(numStr, ext)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(numStr)
		if err != nil || n < 1 {
			continue
		}
		backups = append(backups, n)
	}

	return backups, nil
}

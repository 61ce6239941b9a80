// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package materialize copies an allow-listed subset of a source tree into a
// destination tree.
package materialize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/qiniu/x/log"
	"golang.org/x/mod/module"
)

// MissingSourceFileError reports an allow-list entry absent from the source tree.
type MissingSourceFileError struct {
	Entry string
	Err   error
}

func (e *MissingSourceFileError) Error() string {
	return fmt.Sprintf("missing source file %s: %v", e.Entry, e.Err)
}
func (e *MissingSourceFileError) Unwrap() error { return e.Err }

// DestinationWriteError reports a directory or file that could not be written.
type DestinationWriteError struct {
	Path string
	Err  error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}
func (e *DestinationWriteError) Unwrap() error { return e.Err }

// InvalidEntryError reports an allow-list entry that is not a plain relative
// path with at most one directory level.
type InvalidEntryError struct {
	Entry string
	Err   error
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid allow-list entry %q: %v", e.Entry, e.Err)
}
func (e *InvalidEntryError) Unwrap() error { return e.Err }

// Rule copies Files from Src to Dst.
type Rule struct {
	Src   string
	Dst   string
	Files []string
}

// Apply runs Materialize for r.
func (r Rule) Apply() (int, error) {
	return Materialize(r.Src, r.Dst, r.Files)
}

// Materialize copies every entry of files from src to the same relative
// path under dst and returns how many files were copied.
//
// Entries are slash-separated and may name one directory level ("a.h",
// "layers/b.h"). Missing destination directories are created; nothing at
// dst is removed. Files are rewritten on every call. Copying stops at the
// first failure, leaving earlier entries in place.
func Materialize(src, dst string, files []string) (int, error) {
	for _, entry := range files {
		if err := checkEntry(entry); err != nil {
			return 0, err
		}
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, &DestinationWriteError{Path: dst, Err: err}
	}

	n := 0
	for _, entry := range files {
		if err := copyEntry(src, dst, entry); err != nil {
			return n, err
		}
		log.Debugf("copied %s -> %s", entry, dst)
		n++
	}
	return n, nil
}

// checkEntry applies module zip file path rules, so names that are reserved
// on Windows (aux.h, con.h, nul.h) are rejected on every platform.
func checkEntry(entry string) error {
	if err := module.CheckFilePath(entry); err != nil {
		return &InvalidEntryError{Entry: entry, Err: err}
	}
	if strings.Count(entry, "/") > 1 {
		return &InvalidEntryError{Entry: entry, Err: errors.New("more than one directory level")}
	}
	return nil
}

func copyEntry(src, dst, entry string) error {
	rel := filepath.FromSlash(entry)

	in, err := os.Open(filepath.Join(src, rel))
	if err != nil {
		// ENOTDIR: a parent of the entry is a regular file.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return &MissingSourceFileError{Entry: entry, Err: err}
		}
		return fmt.Errorf("read %s: %w", entry, err)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return fmt.Errorf("read %s: %w", entry, err)
	}
	if !fi.Mode().IsRegular() {
		return &MissingSourceFileError{Entry: entry, Err: errors.New("not a regular file")}
	}

	target := filepath.Join(dst, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return &DestinationWriteError{Path: filepath.Dir(target), Err: err}
	}
	out, err := os.Create(target)
	if err != nil {
		return &DestinationWriteError{Path: target, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &DestinationWriteError{Path: target, Err: err}
	}
	if err := out.Close(); err != nil {
		return &DestinationWriteError{Path: target, Err: err}
	}
	return nil
}

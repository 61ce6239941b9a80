// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vcstest builds throwaway git repositories for tests.
package vcstest

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// NewRepo creates a non-bare repository under a temporary directory and
// records one commit per element of revisions. Each element maps
// slash-separated paths to file content; files from earlier commits are kept
// unless overwritten. It returns the repository path, usable as a clone URL,
// and the commit hashes in order.
//
// The test is skipped when git is not installed: cloning from a local path
// runs git-upload-pack, with go-git as well.
func NewRepo(t testing.TB, revisions ...map[string]string) (string, []string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	dir := filepath.Join(t.TempDir(), "upstream")
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}

	var commits []string
	for i, files := range revisions {
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			full := filepath.Join(dir, filepath.FromSlash(name))
			if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(full, []byte(files[name]), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := wt.Add(name); err != nil {
				t.Fatalf("add %s: %v", name, err)
			}
		}
		h, err := wt.Commit("revision "+string(rune('A'+i)), &git.CommitOptions{
			Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
		})
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
		commits = append(commits, h.String())
	}
	return dir, commits
}

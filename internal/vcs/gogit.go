// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// goGitVCS implements VCS in-process with go-git, for hosts without a git
// executable.
type goGitVCS struct{}

// NewGoGitVCS creates a VCS backed by go-git.
func NewGoGitVCS() VCS {
	return goGitVCS{}
}

func (goGitVCS) Clone(ctx context.Context, remote, dir string) error {
	opts := &git.CloneOptions{URL: remote, NoCheckout: true}
	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return fmt.Errorf("clone %s: %w", remote, err)
	}
	return nil
}

func (goGitVCS) Checkout(ctx context.Context, dir, rev string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}
	h := plumbing.NewHash(rev)
	if _, err := repo.CommitObject(h); err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return fmt.Errorf("%w %s", ErrUnknownRevision, rev)
		}
		return fmt.Errorf("resolve %s: %w", rev, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: h, Force: true}); err != nil {
		return fmt.Errorf("checkout %s: %w", rev, err)
	}
	return nil
}

func (goGitVCS) Head(ctx context.Context, dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", ErrNotRepository
		}
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	return ref.Hash().String(), nil
}

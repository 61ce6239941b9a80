// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrNotRepository is returned by Head when dir holds no checkout.
	ErrNotRepository = errors.New("not a git checkout")

	// ErrUnknownRevision is returned by Checkout when the revision does not
	// name a commit in the cloned repository.
	ErrUnknownRevision = errors.New("unknown revision")
)

// VCS defines the interface for version control operations.
type VCS interface {
	// Clone performs a full clone of remote into dir without checking out
	// a working tree. dir must not exist or be empty.
	Clone(ctx context.Context, remote, dir string) error

	// Checkout detaches the working tree in dir at rev.
	// rev must be a full commit hash.
	Checkout(ctx context.Context, dir, rev string) error

	// Head returns the commit hash checked out in dir.
	// It returns ErrNotRepository if dir is not the root of a checkout.
	Head(ctx context.Context, dir string) (string, error)
}

// gitVCS implements VCS using git.
type gitVCS struct {
	git string
}

// GitOption configures gitVCS.
type GitOption func(*gitVCS)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *gitVCS) {
		g.git = path
	}
}

// NewGitVCS creates a new git VCS instance.
func NewGitVCS(opts ...GitOption) VCS {
	g := &gitVCS{git: "git"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gitVCS) Clone(ctx context.Context, remote, dir string) error {
	if err := g.run(ctx, "", "clone", "--quiet", "--no-checkout", remote, dir); err != nil {
		return fmt.Errorf("clone %s: %w", remote, err)
	}
	return nil
}

func (g *gitVCS) Checkout(ctx context.Context, dir, rev string) error {
	// cat-file fails for anything that is not a reachable commit object.
	if err := g.run(ctx, dir, "cat-file", "-e", rev+"^{commit}"); err != nil {
		return fmt.Errorf("%w %s: %v", ErrUnknownRevision, rev, err)
	}
	if err := g.run(ctx, dir, "checkout", "--quiet", "--detach", rev); err != nil {
		return fmt.Errorf("checkout %s: %w", rev, err)
	}
	return nil
}

func (g *gitVCS) Head(ctx context.Context, dir string) (string, error) {
	// Without this check git would walk up and report an enclosing repository.
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return "", ErrNotRepository
	}
	output, err := g.output(ctx, dir, "rev-parse", "--verify", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	return strings.TrimSpace(output), nil
}

func (g *gitVCS) run(ctx context.Context, dir string, args ...string) error {
	_, err := g.output(ctx, dir, args...)
	return err
}

func (g *gitVCS) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.git, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

// Default returns the git executable backend when git is on PATH and the
// in-process go-git backend otherwise.
func Default() VCS {
	if _, err := exec.LookPath("git"); err == nil {
		return NewGitVCS()
	}
	return NewGoGitVCS()
}

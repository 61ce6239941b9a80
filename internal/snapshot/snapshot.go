// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snapshot keeps a local working copy of an external source tree at
// one pinned commit.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/goplus/prebuild/internal/vcs"
	"github.com/qiniu/x/log"
)

var commitHash = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Dependency pins an external source tree to one commit.
type Dependency struct {
	// Name is the directory name of the snapshot under a build root.
	Name string
	// Remote is the clone URL (or a local repository path).
	Remote string
	// Revision is the full commit hash to check out.
	Revision string
}

// Snapshot is a working copy of a Dependency on disk.
type Snapshot struct {
	Dir string
	// Revision is the commit checked out in Dir.
	Revision string
	// Reused is true when Ensure found an existing checkout and left it alone.
	Reused bool
}

// Fetcher materializes snapshots through a VCS backend.
type Fetcher struct {
	vcs    vcs.VCS
	verify bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithVerify makes Ensure compare the HEAD of an existing checkout with the
// pinned revision instead of trusting it. A mismatch is reported as a
// WorkspaceStateError.
func WithVerify() Option {
	return func(f *Fetcher) {
		f.verify = true
	}
}

// NewFetcher creates a Fetcher that uses v for all repository operations.
func NewFetcher(v vcs.VCS, opts ...Option) *Fetcher {
	f := &Fetcher{vcs: v}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Ensure makes dir hold a working tree of dep at dep.Revision.
//
// A missing or empty dir is cloned and checked out. A dir that already holds
// a checkout is returned as is; its revision is assumed correct unless the
// Fetcher was built WithVerify. Anything else at dir is a WorkspaceStateError.
func (f *Fetcher) Ensure(ctx context.Context, dep Dependency, dir string) (*Snapshot, error) {
	if !commitHash.MatchString(dep.Revision) {
		return nil, &RevisionError{Remote: dep.Remote, Revision: dep.Revision, Err: errors.New("not a full commit hash")}
	}

	empty, err := isEmptyDir(dir)
	if err != nil {
		return nil, &WorkspaceStateError{Dir: dir, Reason: "cannot inspect clone path", Err: err}
	}
	if !empty {
		return f.reuse(ctx, dep, dir)
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, &WorkspaceStateError{Dir: dir, Reason: "cannot create parent directory", Err: err}
	}

	// Clone and check out in a staging directory next to dir so an
	// interrupted run never leaves a half-made checkout at dir.
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+"-clone-")
	if err != nil {
		return nil, &WorkspaceStateError{Dir: dir, Reason: "cannot create staging directory", Err: err}
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			log.Warnf("cannot remove staging directory %s: %v", staging, rmErr)
		}
	}()
	work := filepath.Join(staging, filepath.Base(dir))

	log.Infof("cloning %s into %s", dep.Remote, dir)
	if err := f.vcs.Clone(ctx, dep.Remote, work); err != nil {
		return nil, &FetchError{Remote: dep.Remote, Err: err}
	}
	if err := f.vcs.Checkout(ctx, work, dep.Revision); err != nil {
		if errors.Is(err, vcs.ErrUnknownRevision) {
			return nil, &RevisionError{Remote: dep.Remote, Revision: dep.Revision, Err: err}
		}
		return nil, &FetchError{Remote: dep.Remote, Err: err}
	}

	// dir is missing or empty here.
	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		return nil, &WorkspaceStateError{Dir: dir, Reason: "cannot replace empty directory", Err: err}
	}
	if err := os.Rename(work, dir); err != nil {
		return nil, &WorkspaceStateError{Dir: dir, Reason: "cannot move checkout into place", Err: err}
	}
	log.Infof("checked out %s at %s", dep.Name, dep.Revision)

	return &Snapshot{Dir: dir, Revision: dep.Revision}, nil
}

func (f *Fetcher) reuse(ctx context.Context, dep Dependency, dir string) (*Snapshot, error) {
	head, err := f.vcs.Head(ctx, dir)
	if err != nil {
		return nil, &WorkspaceStateError{Dir: dir, Reason: "exists but is not a checkout", Err: err}
	}
	if f.verify && head != dep.Revision {
		return nil, &WorkspaceStateError{
			Dir:    dir,
			Reason: fmt.Sprintf("checked out at %s, want %s", head, dep.Revision),
		}
	}
	log.Debugf("reusing snapshot %s at %s", dir, head)
	return &Snapshot{Dir: dir, Revision: head, Reused: true}, nil
}

// isEmptyDir reports whether dir is missing or an empty directory.
func isEmptyDir(dir string) (bool, error) {
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !fi.IsDir() {
		return false, fmt.Errorf("%s is not a directory", dir)
	}

	d, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer d.Close()

	if _, err := d.Readdirnames(1); err == io.EOF {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return false, nil
}

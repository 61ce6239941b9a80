// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package provision fetches pinned header dependencies into an include tree.
package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/prebuild/internal/materialize"
	"github.com/goplus/prebuild/internal/snapshot"
	"github.com/qiniu/x/log"
)

// HeaderSet is an allow-list of headers copied from one snapshot directory.
type HeaderSet struct {
	// Src is the slash-separated directory inside the snapshot.
	Src string
	// Dst is the slash-separated directory under Bundle.IncludeDir.
	Dst   string
	Files []string
}

// Bundle is a pinned dependency together with the headers taken from it.
type Bundle struct {
	Dep snapshot.Dependency
	// IncludeDir is the directory created under the include root.
	IncludeDir string
	Sets       []HeaderSet
}

// LevelZero returns the Level Zero loader headers pinned for the tracing
// tools. Each call returns a fresh value.
func LevelZero() Bundle {
	return Bundle{
		Dep: snapshot.Dependency{
			Name:     "level-zero",
			Remote:   "https://github.com/oneapi-src/level-zero.git",
			Revision: "a4afcb39ee265e595d3f0aa57b25b5e845fb494c",
		},
		IncludeDir: "level_zero",
		Sets: []HeaderSet{
			{
				Src:   "include",
				Dst:   ".",
				Files: []string{"ze_api.h", "zes_api.h", "zet_api.h"},
			},
			{
				Src:   "include/layers",
				Dst:   "layers",
				Files: []string{"zel_tracing_api.h", "zel_tracing_register_cb.h"},
			},
		},
	}
}

// Rules maps b onto a snapshot checked out at snapDir and an include root.
func (b Bundle) Rules(snapDir, includeRoot string) []materialize.Rule {
	dst := filepath.Join(includeRoot, b.IncludeDir)
	rules := make([]materialize.Rule, 0, len(b.Sets))
	for _, set := range b.Sets {
		rules = append(rules, materialize.Rule{
			Src:   filepath.Join(snapDir, filepath.FromSlash(set.Src)),
			Dst:   filepath.Join(dst, filepath.FromSlash(set.Dst)),
			Files: set.Files,
		})
	}
	return rules
}

// Headers fetches b.Dep into buildRoot/<name> and copies every header set
// into includeRoot/<IncludeDir>. It returns the number of headers copied.
//
// Destination directories are created before the fetch so that a partial
// run still leaves the include layout in place.
func Headers(ctx context.Context, f *snapshot.Fetcher, b Bundle, includeRoot, buildRoot string) (int, error) {
	for _, set := range b.Sets {
		dir := filepath.Join(includeRoot, b.IncludeDir, filepath.FromSlash(set.Dst))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, &materialize.DestinationWriteError{Path: dir, Err: err}
		}
	}

	snap, err := f.Ensure(ctx, b.Dep, filepath.Join(buildRoot, b.Dep.Name))
	if err != nil {
		return 0, err
	}

	total := 0
	for _, r := range b.Rules(snap.Dir, includeRoot) {
		n, err := r.Apply()
		total += n
		if err != nil {
			return total, fmt.Errorf("%s headers: %w", b.Dep.Name, err)
		}
	}
	log.Infof("copied %d %s headers into %s", total, b.Dep.Name, filepath.Join(includeRoot, b.IncludeDir))
	return total, nil
}

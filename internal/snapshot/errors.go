// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import "fmt"

// FetchError reports that the remote could not be cloned.
type FetchError struct {
	Remote string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Remote, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// RevisionError reports a pinned revision that is malformed or absent from
// the remote.
type RevisionError struct {
	Remote   string
	Revision string
	Err      error
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("revision %s of %s: %v", e.Revision, e.Remote, e.Err)
}
func (e *RevisionError) Unwrap() error { return e.Err }

// WorkspaceStateError reports a clone path whose contents cannot be used
// as a snapshot. It is never repaired automatically.
type WorkspaceStateError struct {
	Dir    string
	Reason string
	Err    error
}

func (e *WorkspaceStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("workspace %s: %s: %v", e.Dir, e.Reason, e.Err)
	}
	return fmt.Sprintf("workspace %s: %s", e.Dir, e.Reason)
}
func (e *WorkspaceStateError) Unwrap() error { return e.Err }

package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/prebuild/internal/vcs/vcstest"
)

// newSourceRepo creates a local repository with two commits that both touch
// include/ze_api.h.
func newSourceRepo(t *testing.T) (string, []string) {
	t.Helper()
	return vcstest.NewRepo(t,
		map[string]string{"include/ze_api.h": "v1\n"},
		map[string]string{"include/ze_api.h": "v2\n"},
	)
}

type backend struct {
	name string
	vcs  VCS
}

func backends(t *testing.T) []backend {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
	return []backend{{"go-git", NewGoGitVCS()}, {"git", NewGitVCS()}}
}

func TestCloneCheckoutHead(t *testing.T) {
	remote, commits := newSourceRepo(t)
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "level-zero")
			if err := b.vcs.Clone(ctx, remote, dir); err != nil {
				t.Fatalf("Clone failed: %v", err)
			}
			header := filepath.Join(dir, "include", "ze_api.h")
			if _, err := os.Stat(header); !os.IsNotExist(err) {
				t.Fatalf("Clone should not check out a working tree, stat err = %v", err)
			}
			if err := b.vcs.Checkout(ctx, dir, commits[0]); err != nil {
				t.Fatalf("Checkout failed: %v", err)
			}

			head, err := b.vcs.Head(ctx, dir)
			if err != nil {
				t.Fatalf("Head failed: %v", err)
			}
			if head != commits[0] {
				t.Errorf("Head = %s, want %s", head, commits[0])
			}

			data, err := os.ReadFile(header)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != "v1\n" {
				t.Errorf("ze_api.h = %q, want %q", data, "v1\n")
			}
		})
	}
}

func TestCheckoutUnknownRevision(t *testing.T) {
	remote, _ := newSourceRepo(t)
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "level-zero")
			if err := b.vcs.Clone(ctx, remote, dir); err != nil {
				t.Fatalf("Clone failed: %v", err)
			}
			err := b.vcs.Checkout(ctx, dir, strings.Repeat("f", 40))
			if !errors.Is(err, ErrUnknownRevision) {
				t.Errorf("Checkout error = %v, want ErrUnknownRevision", err)
			}
		})
	}
}

func TestHeadNotRepository(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := b.vcs.Head(ctx, dir); !errors.Is(err, ErrNotRepository) {
				t.Errorf("Head error = %v, want ErrNotRepository", err)
			}
		})
	}
}

func TestCloneUnreachableRemote(t *testing.T) {
	ctx := context.Background()
	remote := filepath.Join(t.TempDir(), "does-not-exist")

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "level-zero")
			if err := b.vcs.Clone(ctx, remote, dir); err == nil {
				t.Error("Clone of a missing remote should fail")
			}
		})
	}
}

func TestWithGitPath(t *testing.T) {
	g := NewGitVCS(WithGitPath("/opt/git/bin/git")).(*gitVCS)
	if g.git != "/opt/git/bin/git" {
		t.Errorf("git path = %q, want %q", g.git, "/opt/git/bin/git")
	}

	bad := NewGitVCS(WithGitPath(filepath.Join(t.TempDir(), "no-such-git")))
	if err := bad.Clone(context.Background(), "https://example.invalid/repo.git", t.TempDir()); err == nil {
		t.Error("Clone with a missing git executable should fail")
	}
}

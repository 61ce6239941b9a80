package snapshot

import (
	"context"
	"os"
	"path/filepath"
)

// mockVCS implements vcs.VCS for unit testing.
type mockVCS struct {
	cloneFunc    func(ctx context.Context, remote, dir string) error
	checkoutFunc func(ctx context.Context, dir, rev string) error
	headFunc     func(ctx context.Context, dir string) (string, error)

	clones int
}

func (m *mockVCS) Clone(ctx context.Context, remote, dir string) error {
	m.clones++
	if m.cloneFunc != nil {
		return m.cloneFunc(ctx, remote, dir)
	}
	// Leave something behind so the directory no longer looks empty.
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		return err
	}
	return nil
}

func (m *mockVCS) Checkout(ctx context.Context, dir, rev string) error {
	if m.checkoutFunc != nil {
		return m.checkoutFunc(ctx, dir, rev)
	}
	return nil
}

func (m *mockVCS) Head(ctx context.Context, dir string) (string, error) {
	if m.headFunc != nil {
		return m.headFunc(ctx, dir)
	}
	return "", nil
}

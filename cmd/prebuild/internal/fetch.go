package internal

import (
	"fmt"

	"github.com/goplus/prebuild/internal/provision"
	"github.com/goplus/prebuild/internal/snapshot"
	"github.com/goplus/prebuild/internal/vcs"
	"github.com/spf13/cobra"
)

var fetchHeadersCmd = &cobra.Command{
	Use:   "fetch-headers <include_path> <build_path>",
	Short: "Fetch the pinned Level Zero headers",
	Long: `Fetch-headers clones Level Zero at its pinned commit into <build_path>/level-zero
and copies the API and tracing layer headers into <include_path>/level_zero.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFetchHeaders,
}

// Replaced in tests.
var (
	headerBundle = provision.LevelZero
	newVCS       = vcs.Default
)

func init() {
	rootCmd.AddCommand(fetchHeadersCmd)
}

func runFetchHeaders(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(cmd.OutOrStdout(), "Usage:", cmd.Root().Name(), cmd.Use)
		return nil
	}

	f := snapshot.NewFetcher(newVCS())
	if _, err := provision.Headers(cmd.Context(), f, headerBundle(), args[0], args[1]); err != nil {
		return fmt.Errorf("fetch-headers: %w", err)
	}
	return nil
}

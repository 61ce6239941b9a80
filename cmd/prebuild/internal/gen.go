package internal

import (
	"fmt"

	"github.com/goplus/prebuild/internal/stub"
	"github.com/spf13/cobra"
)

func init() {
	for _, g := range []stub.Generator{stub.TracingCallbacks, stub.TracingCommonHeader} {
		rootCmd.AddCommand(newStubCmd(g))
	}
}

// newStubCmd exposes g as a command that takes the output path.
func newStubCmd(g stub.Generator) *cobra.Command {
	return &cobra.Command{
		Use:   g.Name + " <output_file_path>",
		Short: g.Short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				fmt.Fprintln(cmd.OutOrStdout(), "Usage:", cmd.Root().Name(), cmd.Use)
				return nil
			}
			return stub.Write(args[0], g)
		},
	}
}

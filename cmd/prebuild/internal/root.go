package internal

import (
	"context"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prebuild",
	Short: "prebuild prepares a native build tree before compilation",
	Long: `prebuild fetches pinned header dependencies into an include directory and
generates the placeholder sources that build rules expect to exist.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	log.SetOutputLevel(log.Linfo)
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

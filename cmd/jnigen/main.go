package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("jnigen")

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:          "jnigen",
		Short:        "Generate Go bindings to and from the JVM",
		SilenceUsage: true,
		Version:      version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (repeat for debug output)")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newShimCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newSymbolCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

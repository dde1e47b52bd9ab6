package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/abdul-hamid-achik/gotruth/packages/core/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  usageArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		v, built := version, buildTime
		if info, ok := debug.ReadBuildInfo(); ok && v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			// go install builds carry the module version instead of ldflags.
			v = info.Main.Version
		}
		fmt.Fprintf(cmd.OutOrStdout(), "truth version %s\n", v)
		fmt.Fprintf(cmd.OutOrStdout(), "Built: %s (%s %s/%s)\n", built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(cmd.OutOrStdout(), "Default truth import: %s\n", config.DefaultTruthImport)
	},
}

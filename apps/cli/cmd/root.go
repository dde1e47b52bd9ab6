package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "truth",
	Short: "Fluent assertions for Go tests.",
	Long: `truth rewrites testify assertions into fluent truth assertions.

  assert.Equal(t, want, got)   becomes   truth.ExpectThat(t, got).IsEqualTo(want)
  require.Len(t, items, 3)     becomes   truth.AssertThat(t, items).HasSize(3)`,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/gotruth/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a converter config file",
	Long: `Create a .truthconv.yaml file with the default converter settings.

The file sets the truth import path, the entry points used for assert
and require calls, the argument names treated as expected values, and
the directories skipped when converting a tree.

Examples:
  truth init
  truth init ./service --force`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	configFile := filepath.Join(dir, ".truthconv.yaml")
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return &ExitError{
				Code: ExitConfigError,
				Err:  fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile),
			}
		}
	}

	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return &ExitError{Code: ExitConfigError, Err: fmt.Errorf("failed to create config file: %w", err)}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'truth convert ./...' to convert the tests under this directory.\n")
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/gotruth/packages/convert"
	"github.com/abdul-hamid-achik/gotruth/packages/core/config"
	"github.com/abdul-hamid-achik/gotruth/packages/logging"
	"github.com/abdul-hamid-achik/gotruth/packages/output"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file|directory>...",
	Short: "Convert testify assertions to truth",
	Long: `Rewrite testify assert and require calls into fluent truth assertions.

Files are converted in place. Directories are walked for _test.go files,
skipping the directories listed under exclude in the config file.

  assert.X(t, ...)   becomes   truth.ExpectThat(t, ...)...
  require.X(t, ...)  becomes   truth.AssertThat(t, ...)...

Assertion messages have no fluent equivalent and are dropped with a
warning. Calls without a rewrite rule are left unchanged.

Examples:
  truth convert store_test.go
  truth convert ./... --dry-run --verbose
  truth convert ./pkg/ --format json
  truth convert store_test.go --output /tmp/store_test.go
  truth convert . --truth-import example.com/internal/truth`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: convertCommand,
}

var (
	outputFlag      string
	dryRunFlag      bool
	configFlag      string
	verboseFlag     bool
	noColorFlag     bool
	truthImportFlag string
	formatFlag      string
	logLevelFlag    string
)

func init() {
	convertCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the converted file here instead of in place (single input only)")
	convertCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", getEnvBool("TRUTH_DRY_RUN", false), "Report changes without writing files (env: TRUTH_DRY_RUN)")
	convertCmd.Flags().StringVar(&configFlag, "config", getEnvString("TRUTH_CONFIG", ""), "Path to config file (env: TRUTH_CONFIG)")
	convertCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "List warnings and, with --dry-run, show diffs")
	convertCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("TRUTH_NO_COLOR", false), "Disable colored output (env: TRUTH_NO_COLOR)")
	convertCmd.Flags().StringVar(&truthImportFlag, "truth-import", "", "Import path of the truth package")
	convertCmd.Flags().StringVar(&formatFlag, "format", getEnvString("TRUTH_FORMAT", "console"), "Report format: console, json (env: TRUTH_FORMAT)")
	convertCmd.Flags().StringVar(&logLevelFlag, "log-level", getEnvString("TRUTH_LOG_LEVEL", "error"), "Log level: debug, info, warn, error (env: TRUTH_LOG_LEVEL)")

	_ = convertCmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{"console", "json"}, cobra.ShellCompDirectiveNoFileComp))
	_ = convertCmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions([]string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp))
	_ = convertCmd.MarkFlagFilename("config", "json", "yaml", "yml")
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatResult(result *convert.Result)
	FormatError(path string, err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	overrides := &config.Config{TruthImport: truthImportFlag}
	if dryRunFlag {
		overrides.DryRun = config.BoolPtr(true)
	}
	if verboseFlag {
		overrides.Verbose = config.BoolPtr(true)
	}
	if noColorFlag {
		overrides.NoColor = config.BoolPtr(true)
	}
	cfg = cfg.Merge(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFormatter(cmd *cobra.Command, cfg *config.Config) (Formatter, error) {
	switch strings.ToLower(formatFlag) {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout())), nil
	case "console", "":
		return output.NewConsoleFormatter(
			output.WithWriter(cmd.OutOrStdout()),
			output.WithVerbose(cfg.GetVerbose()),
			output.WithNoColor(cfg.GetNoColor()),
			output.WithDiff(cfg.GetDryRun() && cfg.GetVerbose()),
		), nil
	}
	return nil, fmt.Errorf("unknown format %q (want console or json)", formatFlag)
}

func convertCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}

	level, err := logging.ParseLevel(logLevelFlag)
	if err != nil {
		return usageError(err)
	}
	formatter, err := newFormatter(cmd, cfg)
	if err != nil {
		return usageError(err)
	}

	files, err := collectFiles(args, cfg.Exclude)
	if err != nil {
		return usageError(err)
	}
	if len(files) == 0 {
		return usageError(fmt.Errorf("no Go test files found"))
	}
	if outputFlag != "" && len(files) > 1 {
		return usageError(fmt.Errorf("--output requires a single input file, got %d", len(files)))
	}
	cmd.SilenceUsage = true

	logger := logging.New()
	logger.SetWriter(cmd.ErrOrStderr())
	logger.SetLevel(level)

	converter := convert.NewConverter(convert.WithConfig(cfg), convert.WithLogger(logger))

	formatter.FormatHeader(version)
	startTime := time.Now()

	var failed, unparsable int
	for _, file := range files {
		result, err := converter.ConvertFile(file)
		if err != nil {
			formatter.FormatError(file, err)
			if errors.Is(err, convert.ErrSyntax) {
				unparsable++
			} else {
				failed++
			}
			continue
		}

		if !cfg.GetDryRun() && (result.Changed() || outputFlag != "") {
			dest := file
			if outputFlag != "" {
				dest = outputFlag
			}
			if err := writeResult(file, dest, result.Output); err != nil {
				formatter.FormatError(file, err)
				failed++
				continue
			}
			logger.Info("wrote converted file", "file", dest, "assertions", result.Converted)
		}
		formatter.FormatResult(result)
	}

	if flushable, ok := formatter.(Flushable); ok {
		if err := flushable.Flush(time.Since(startTime)); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}

	switch {
	case failed > 0:
		return &ExitError{Code: ExitConversionFailure, Err: fmt.Errorf("%d of %d files failed to convert", failed+unparsable, len(files))}
	case unparsable > 0:
		return &ExitError{Code: ExitParseError, Err: fmt.Errorf("%d of %d files could not be parsed", unparsable, len(files))}
	}
	return nil
}

// writeResult writes data to dest, keeping the permissions of src.
func writeResult(src, dest string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(src); err == nil {
		perm = info.Mode().Perm()
	}
	if dir := filepath.Dir(dest); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(dest, data, perm); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// collectFiles expands the arguments into Go files. Named files are taken
// as given; directories are walked for _test.go files, skipping excluded
// directory names. A trailing /... is accepted and ignored.
func collectFiles(args []string, exclude []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		if trimmed := strings.TrimSuffix(arg, "/..."); trimmed != arg {
			arg = trimmed
			if arg == "" || arg == "." {
				arg = "."
			}
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			if filepath.Ext(arg) != ".go" {
				return nil, fmt.Errorf("%s is not a Go file", arg)
			}
			add(arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && slices.Contains(exclude, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if isTestFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func isTestFile(path string) bool {
	return strings.HasSuffix(path, "_test.go")
}

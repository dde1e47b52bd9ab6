package config

// DefaultTruthImport is the import path of the assertion package written
// into converted files.
const DefaultTruthImport = "github.com/abdul-hamid-achik/gotruth/packages/truth"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		TruthImport:   DefaultTruthImport,
		TruthAlias:    "",
		AssertEntry:   "ExpectThat",
		RequireEntry:  "AssertThat",
		ExpectedNames: []string{"want", "wanted", "expected", "expect", "exp"},
		Exclude:       []string{"vendor", "testdata", ".git"},
		DryRun:        BoolPtr(false),
		Verbose:       BoolPtr(false),
		NoColor:       BoolPtr(false),
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgfix",
	Short: "Resolve the SQL scripts and datasets each test uses",
	Long: banner + `

pgfix works out which SQL scripts and dataset files apply to a test group
and to each of its cases, using the declarations in pgfix-tests.yaml and the
naming conventions in pgfix.yaml, and checks that every one of them exists
in the configured search locations.

Precedence:
  1. Files declared on the case
  2. The case's default name, when the case declares the kind without files
  3. Files declared on the group, or the group's default name
  4. Nothing

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Declared resource not found in any search location
  12 - Same kind declared twice at one scope
  13 - Invalid test manifest`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgfix")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

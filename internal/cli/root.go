package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testforge",
	Short: "Generate JUnit tests for Java sources with a local model",
	Long: `testforge scans Java source trees, splits each file into method units,
skips plain data holders, and asks a local Ollama model to write JUnit 5
tests for the rest. Reports are written as markdown files.

Configuration is read from .testforge/config.yml in the project directory,
with TESTFORGE_* environment variables taking precedence.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setQuietLogging silences log output for --quiet runs and returns a restore func.
func setQuietLogging(quiet bool) func() {
	if !quiet {
		return func() {}
	}
	prev := log.Writer()
	log.SetOutput(io.Discard)
	return func() { log.SetOutput(prev) }
}

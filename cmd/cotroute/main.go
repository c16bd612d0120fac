// Command cotroute compiles a CoT routing document and exercises it:
// validate a document, route a single synthetic message against it, or
// benchmark the routing hot path.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "cotroute",
	Short:   "Compile and exercise CoT filtering/routing configurations",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

var appConfigPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&appConfigPath, "app-config", "", "path to the cotroute application config file (optional)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
}

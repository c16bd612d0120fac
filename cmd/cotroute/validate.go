package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tak-mesh/cot-router/routeconfig"
)

var validateCmd = &cobra.Command{
	Use:   "validate <routing-config>",
	Short: "Compile a routing document and report any errors",
	Long: `Validate compiles a YAML or JSON routing document into a Route Table
without starting anything. Every compile error found is printed with
the document path to the offending node; validate exits non-zero if
any were found.

Examples:
  cotroute validate routes.yaml
  cotroute validate --app-config cotroute.yaml routes.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	table, err := routeconfig.CompileFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration is invalid:")
		if cerrs, ok := err.(routeconfig.CompileErrors); ok {
			for _, e := range cerrs {
				fmt.Fprintf(os.Stderr, "  - %s\n", e.Error())
			}
		} else {
			fmt.Fprintf(os.Stderr, "  - %s\n", err)
		}
		os.Exit(1)
		return nil
	}

	stats := table.Stats()
	fmt.Printf("configuration is valid: strategy=%s routes=%d\n", table.Strategy(), len(stats.PerRoute))
	return nil
}

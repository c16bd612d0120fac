package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tak-mesh/cot-router/cotview"
	"github.com/tak-mesh/cot-router/routeconfig"
)

var (
	routeUID  string
	routeTeam string
	routeGrp  string
	routeLat  float64
	routeLon  float64
	routeHAE  float64
)

var routeCmd = &cobra.Command{
	Use:   "route <routing-config> <cot-type>",
	Short: "Route a single synthetic message and print the result",
	Long: `Route compiles a routing document, builds one Message View from the
given CoT type code and flags, evaluates it against the compiled Route
Table, and prints the resulting destinations.

Examples:
  cotroute route routes.yaml a-f-G-E-V-C --uid T1 --lat 0 --lon 0
  cotroute route routes.yaml a-h-A --team blue --group alpha`,
	Args: cobra.ExactArgs(2),
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVar(&routeUID, "uid", "", "message UID")
	routeCmd.Flags().StringVar(&routeTeam, "team", "", "message team")
	routeCmd.Flags().StringVar(&routeGrp, "group", "", "message group/callsign group")
	routeCmd.Flags().Float64Var(&routeLat, "lat", 0, "latitude")
	routeCmd.Flags().Float64Var(&routeLon, "lon", 0, "longitude")
	routeCmd.Flags().Float64Var(&routeHAE, "hae", 0, "height above ellipsoid")
}

func runRoute(cmd *cobra.Command, args []string) error {
	configPath, cotType := args[0], args[1]

	table, err := routeconfig.CompileFile(configPath)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", configPath, err)
	}

	view := cotview.View{
		CoTType: cotType,
		UID:     routeUID,
		Lat:     routeLat,
		Lon:     routeLon,
	}
	if routeTeam != "" {
		view.Team = &routeTeam
	}
	if routeGrp != "" {
		view.Group = &routeGrp
	}
	if cmd.Flags().Changed("hae") {
		view.HAE = &routeHAE
	}

	result := table.Route(view)

	fmt.Printf("matched_route_ids: [%s]\n", strings.Join(result.MatchedRouteIDs, ", "))
	fmt.Printf("destinations:      [%s]\n", strings.Join(result.Destinations, ", "))
	fmt.Printf("used_default:      %t\n", result.UsedDefault)
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/atmos/internal/app"
	"github.com/five82/atmos/internal/weather"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "atmos: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "atmos",
		Short: "Terminal weather dashboard",
		Long: `atmos keeps a short list of cities with current conditions, a temperature
chart and a place summary.

Without an OpenWeatherMap API key it runs in demo mode with simulated data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/atmos/config.toml)")
	flags.StringVar(&opts.StatePath, "state", "", "state database path (overrides state_path)")
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file with ATMOS_API_KEY")

	root.AddCommand(newLookupCmd(&opts), newHistoryCmd(&opts))
	return root
}

func newLookupCmd(opts *app.Options) *cobra.Command {
	var (
		lat, lon float64
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "lookup [city]",
		Short: "Fetch current weather for one city without saving it",
		Example: `  atmos lookup Paris
  atmos lookup --lat 48.85 --lon 2.35 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := lookupQuery(args, lat, lon, cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon"))
			if err != nil {
				return err
			}
			snap, err := app.Lookup(cmd.Context(), *opts, q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func newHistoryCmd(opts *app.Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved cities, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cities, err := app.History(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, cities)
			}
			if len(cities) == 0 {
				fmt.Fprintln(out, "No saved locations")
				return nil
			}
			for _, c := range cities {
				printSnapshot(out, c)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the cities as JSON")
	return cmd
}

// lookupQuery builds a query from a city argument or a full coordinate pair.
func lookupQuery(args []string, lat, lon float64, hasLat, hasLon bool) (weather.Query, error) {
	switch {
	case len(args) == 1 && (hasLat || hasLon):
		return weather.Query{}, errors.New("pass a city or --lat/--lon, not both")
	case len(args) == 1:
		q := weather.ByName(args[0])
		if q.Name == "" {
			return weather.Query{}, errors.New("city name is empty")
		}
		return q, nil
	case hasLat && hasLon:
		return weather.ByCoords(lat, lon), nil
	case hasLat || hasLon:
		return weather.Query{}, errors.New("--lat and --lon must be used together")
	default:
		return weather.Query{}, errors.New("a city or --lat/--lon is required")
	}
}

func printSnapshot(w io.Writer, s weather.Snapshot) {
	name := s.Name
	if s.Sys.Country != "" {
		name += ", " + s.Sys.Country
	}
	line := fmt.Sprintf("%-24s %4d°C  %s", name, s.RoundedTemp(), s.Description())
	if s.Mock {
		line += "  (demo)"
	}
	fmt.Fprintln(w, line)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

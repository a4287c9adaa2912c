package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"specline/internal/display"
	"specline/internal/fanout"
	"specline/internal/probe"
	"specline/internal/vss"
)

var queryFlags struct {
	lambdaMin float64
	lambdaMax float64
	timeout   time.Duration
	parallel  int
	asJSON    bool
	quiet     bool
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Probe every node for line statistics in a wavelength range",
	Long: "Query fans one probe out per discovered node, prints each node's outcome\n" +
		"as it settles, then a final table in discovery order. A node failing or\n" +
		"timing out never affects the others; the round always completes.",
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.Float64Var(&queryFlags.lambdaMin, "lambda-min", 0, "Lower wavelength bound in Angstrom (required)")
	f.Float64Var(&queryFlags.lambdaMax, "lambda-max", 0, "Upper wavelength bound in Angstrom (required)")
	f.DurationVar(&queryFlags.timeout, "timeout", 0, "Per-node deadline (default from settings, 30s)")
	f.IntVar(&queryFlags.parallel, "parallel", 0, "Cap on concurrent probes (0 = probe every node at once)")
	f.BoolVar(&queryFlags.asJSON, "json", false, "Emit results and totals as JSON")
	f.BoolVar(&queryFlags.quiet, "quiet", false, "Suppress per-node settlement lines")

	_ = queryCmd.MarkFlagRequired("lambda-min")
	_ = queryCmd.MarkFlagRequired("lambda-max")
}

func runQuery(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	nodes, err := settings.Resolver(nil).Resolve(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	if len(nodes) == 0 {
		fmt.Fprintln(errOut, "No queryable nodes discovered.")
		return nil
	}

	timeout := settings.Timeout()
	if queryFlags.timeout > 0 {
		timeout = queryFlags.timeout
	}
	maxInFlight := settings.MaxInFlight
	if queryFlags.parallel > 0 {
		maxInFlight = queryFlags.parallel
	}

	coord := &fanout.Coordinator{
		Prober:      &probe.Prober{},
		Timeout:     timeout,
		MaxInFlight: maxInFlight,
	}

	var sink fanout.Sink
	if !queryFlags.quiet && !queryFlags.asJSON {
		sink = func(r probe.Result) {
			fmt.Fprintln(errOut, display.ResultLine(r))
		}
	}

	q := vss.Range{Min: queryFlags.lambdaMin, Max: queryFlags.lambdaMax}
	results := coord.QueryAll(cmd.Context(), nodes, q, sink)

	if queryFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Results []probe.Result `json:"results"`
			Totals  fanout.Totals  `json:"totals"`
		}{results, fanout.Summarize(results)})
	}

	fmt.Fprintln(out)
	display.Table(out, results)
	return nil
}

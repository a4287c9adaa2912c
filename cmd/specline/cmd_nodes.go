package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var nodesFlags struct {
	asJSON bool
}

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Discover and list the queryable nodes of the federation",
	RunE:  runNodes,
}

func init() {
	nodesCmd.Flags().BoolVar(&nodesFlags.asJSON, "json", false, "Emit the node list as JSON")
}

func runNodes(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	nodes, err := settings.Resolver(nil).Resolve(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if nodesFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBASE URL")
	for _, n := range nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, n.Name, n.BaseURL)
	}
	tw.Flush()
	fmt.Fprintf(out, "\n%d node(s)\n", len(nodes))
	return nil
}

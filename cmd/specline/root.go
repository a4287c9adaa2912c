// specline queries a federation of spectroscopic data nodes: it discovers
// nodes from the central registry and fans out one probe per node to
// measure matching data volume for a wavelength range.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "specline",
	Short: "Federated spectral line discovery",
	Long: "Specline discovers data nodes from the federation registry and probes\n" +
		"each one in parallel for spectral line statistics over a wavelength range.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

var rootFlags struct {
	configPath string
	nodesFile  string
	registry   string
	logLevel   string
	logFormat  string
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to settings file (YAML/JSON)")
	pf.StringVar(&rootFlags.nodesFile, "nodes-file", "", "Static node list (path or URL); skips live registry discovery")
	pf.StringVar(&rootFlags.registry, "registry-url", "", "Registry endpoint for live discovery")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(nodesCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

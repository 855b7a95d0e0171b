// Command carbonctl runs catalog queries, area estimates and carbon
// projections locally against the embedded plant catalog.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var outputFormat string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "carbonctl",
		Short:         "Plan reforestation projects from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("unknown output format %q (want table or json)", outputFormat)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table or json")

	root.AddCommand(newPlantsCmd())
	root.AddCommand(newAreaCmd())
	root.AddCommand(newProjectCmd())
	root.AddCommand(newMicroclimateCmd())
	return root
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

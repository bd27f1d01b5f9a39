package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanisrikanth1989/recdataprep/canvas"
	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

var checkCmd = &cobra.Command{
	Use:   "check <flow.json>",
	Short: "Validate a flow document",
	Long:  "Run the built-in lint rules over a flow document and print the diagnostics. Exits nonzero when any error-severity diagnostic is found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := flowgraph.Load(args[0])
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	diags, err := canvas.ValidateOrError(g, reg)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s [%s] %s\n", d.Severity, d.Rule, d.Message)
		if d.Fix != "" {
			fmt.Fprintf(os.Stderr, "  fix: %s\n", d.Fix)
		}
	}
	if err != nil {
		return err
	}
	if len(diags) == 0 {
		fmt.Fprintln(os.Stderr, "No issues found.")
	}
	return nil
}

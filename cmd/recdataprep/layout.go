package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/phanisrikanth1989/recdataprep/canvas"
	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <flow.json>",
	Short: "Print collision-free display positions",
	Long:  "Run the collision-avoidance pass over a flow document and print each node's stored and derived positions. The document itself is never modified.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	g, err := flowgraph.Load(args[0])
	if err != nil {
		return err
	}

	derived := canvas.ResolveOverlaps(g)

	ids := make([]string, 0, len(derived))
	for id := range derived {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := g.NodeByID(id)
		d := derived[id]
		marker := " "
		if d != n.Position {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %-30s stored=(%.0f,%.0f) derived=(%.0f,%.0f)\n",
			marker, id, n.Position.X, n.Position.Y, d.X, d.Y)
	}
	return nil
}

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phanisrikanth1989/recdataprep/canvas"
	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flow.json]",
	Short: "Serve the editor API",
	Long:  "Start the HTTP editor API over a flow document (or an empty document), including the event stream and WebSocket connection sessions.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8473", "Listen address")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	addr := viper.GetString("addr")

	var g *flowgraph.Graph
	if len(args) == 1 {
		loaded, err := flowgraph.Load(args[0])
		if err != nil {
			return err
		}
		g = loaded
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	editor := canvas.NewEditor(g, reg)
	if verbose {
		editor.Events().On(func(e canvas.Event) {
			fmt.Fprintf(os.Stderr, "[event] %s %v\n", e.Type, e.Data)
		})
	}

	server := canvas.NewEditorServer(editor)
	fmt.Fprintf(os.Stderr, "[editor] Listening on %s\n", addr)
	return http.ListenAndServe(addr, server.Handler())
}

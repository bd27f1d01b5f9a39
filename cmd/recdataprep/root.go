package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "recdataprep",
	Short: "recdataprep flow editor core",
	Long:  "recdataprep builds and repairs data-pipeline flow graphs: smart join inference, layout, validation, and the editor API.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("components", "", "Component catalog YAML (default: embedded catalog)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("components", rootCmd.PersistentFlags().Lookup("components"))
}

func initConfig() {
	viper.SetEnvPrefix("RECDATAPREP")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

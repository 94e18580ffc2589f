// Package cmd is for command line interactions with the unassigner application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "unassigner",
	Short: `Evaluate the species assignments of 16S rRNA fragments.
For each query seq matched to a type strain, report the probability that the
identity of the full-length seqs falls below the species threshold`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set global flags
func init() {
	cobra.OnInitialize(readSettings)

	rootCmd.PersistentFlags().StringP("settings", "s", "", "path to a settings file with flag defaults")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "whether to log progress to stderr")
	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// readSettings loads the settings file into viper so its values back every
// flag the user left unset on the command line.
func readSettings() {
	settings := viper.GetString("settings")
	if settings == "" {
		return
	}

	viper.SetConfigFile(settings)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("failed to read settings file %s: %v", settings, err)
	}
}

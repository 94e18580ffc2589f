package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ulthran/unassigner/config"
	"github.com/Ulthran/unassigner/internal/unassigner"
)

// queryCmd is for evaluating the species assignments of query seqs.
var queryCmd = &cobra.Command{
	Use:                        "query [query.fasta]",
	Run:                        unassigner.Query,
	Short:                      "Evaluate the species assignments of query seqs",
	SuggestionsMinimumDistance: 3,
	Long: `Align each query seq against the type strain seqs with blastn, extend the
hits to cover the full type strain seq, and report the probability that the
full-length identity falls below the species threshold.

Queries without a hit are reported with NA in every column but the first.`,
}

// set flags
func init() {
	queryCmd.Flags().StringP("in", "i", "", "input FASTA with query seqs")
	queryCmd.Flags().StringP("out", "o", "", "output file name (defaults to stdout)")
	queryCmd.Flags().StringP("type-strains", "t", config.DefaultTypeStrainFile, "FASTA with type strain seqs (with a BLAST database alongside)")
	queryCmd.Flags().Float64P("min-id", "m", config.DefaultMinIdentity, "full-length identity threshold for unassignment (0-1)")
	queryCmd.Flags().Int("search-id", config.DefaultSearchIdentity, "%-identity threshold for the search (see 'blastn -help')")
	queryCmd.Flags().Int("max-hits", config.DefaultMaxHits, "number of candidate type strains to collect per query")
	queryCmd.Flags().IntP("threads", "j", config.DefaultThreads, "number of threads blastn is run with")
	queryCmd.Flags().Int("timeout", config.DefaultTimeoutSeconds, "seconds before an external command is failed")
	queryCmd.Flags().BoolP("keep", "k", false, "keep the intermediate search files (reused when rerun)")
	queryCmd.Flags().Float64("prior-alpha", config.DefaultPriorAlpha, "alpha of the Beta prior on the mismatch rate")
	queryCmd.Flags().Float64("prior-beta", config.DefaultPriorBeta, "beta of the Beta prior on the mismatch rate")

	viper.BindPFlag("in", queryCmd.Flags().Lookup("in"))
	viper.BindPFlag("out", queryCmd.Flags().Lookup("out"))
	viper.BindPFlag("type-strains", queryCmd.Flags().Lookup("type-strains"))
	viper.BindPFlag("min-id", queryCmd.Flags().Lookup("min-id"))
	viper.BindPFlag("search-id", queryCmd.Flags().Lookup("search-id"))
	viper.BindPFlag("max-hits", queryCmd.Flags().Lookup("max-hits"))
	viper.BindPFlag("threads", queryCmd.Flags().Lookup("threads"))
	viper.BindPFlag("timeout", queryCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("keep", queryCmd.Flags().Lookup("keep"))
	viper.BindPFlag("prior-alpha", queryCmd.Flags().Lookup("prior-alpha"))
	viper.BindPFlag("prior-beta", queryCmd.Flags().Lookup("prior-beta"))

	rootCmd.AddCommand(queryCmd)
}

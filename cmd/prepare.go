package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ulthran/unassigner/internal/refdb"
)

// prepareCmd is for downloading the reference seqs and formatting them into
// BLAST databases.
var prepareCmd = &cobra.Command{
	Use:                        "prepare",
	Run:                        refdb.PrepareCmd,
	Short:                      "Download and format the type strain and reference databases",
	SuggestionsMinimumDistance: 3,
	Long: `Download the LTP type strain seqs and the Greengenes reference seqs, relabel
them for searching, and format each FASTA into a BLAST database with
makeblastdb. Files that were already downloaded are reused.`,
}

// cleanCmd is for removing the downloaded and derived reference files.
var cleanCmd = &cobra.Command{
	Use:                        "clean",
	Run:                        refdb.CleanCmd,
	Short:                      "Remove the downloaded and derived reference files",
	SuggestionsMinimumDistance: 3,
}

// set flags
func init() {
	prepareCmd.Flags().StringP("dir", "d", ".", "directory to download the reference files into")
	prepareCmd.Flags().Bool("clean", false, "remove existing reference files before downloading")

	cleanCmd.Flags().StringP("dir", "d", ".", "directory with the reference files")

	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(cleanCmd)
}

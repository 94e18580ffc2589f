package unassigner

import (
	"log"
	"os"
	"time"

	"github.com/Ulthran/unassigner/config"
	"github.com/Ulthran/unassigner/internal/fasta"
	"github.com/Ulthran/unassigner/internal/search"
	"github.com/spf13/cobra"
)

// stderr is for logging to the user
var stderr = log.New(os.Stderr, "", 0)

// Query is the handler for the `unassigner query` command: read the query
// FASTA, evaluate every query against its candidate type strains, write the
// result table.
func Query(cmd *cobra.Command, args []string) {
	c := config.New()

	in := c.In
	if in == "" && len(args) > 0 {
		in = args[0]
	}
	if in == "" {
		cmd.Help()
		stderr.Fatalln("must pass a query FASTA file with -i")
	}

	queries, err := fasta.Read(in)
	if err != nil {
		stderr.Fatalln(err)
	}

	searcher := &search.Searcher{
		SpeciesFile:    c.TypeStrains,
		Threads:        c.Threads,
		MaxHits:        c.MaxHits,
		SearchIdentity: c.SearchIdentity,
		Timeout:        time.Duration(c.Timeout) * time.Second,
	}

	var aligner Aligner = searcher
	if c.Keep {
		searcher.InputFile = in + ".search.fasta"
		searcher.OutputFile = in + ".search.txt"

		// a kept search output from an earlier run is replayed rather than
		// searched again
		if info, err := os.Stat(searcher.OutputFile); err == nil && info.Size() > 0 {
			if c.Verbose {
				stderr.Printf("reusing search output at %s", searcher.OutputFile)
			}
			aligner = &search.FileSearcher{
				SpeciesFile: c.TypeStrains,
				OutputFile:  searcher.OutputFile,
			}
		}
	}

	if c.Verbose {
		stderr.Printf("aligning %d query seqs to type strain seqs in %s", len(queries), c.TypeStrains)
	}

	alg := NewAlgorithm(
		aligner,
		NewConstantMismatcher(c.MinIdentity, c.PriorAlpha, c.PriorBeta),
		c.MinIdentity,
	)

	results, err := alg.Unassign(queries)
	if err != nil {
		stderr.Fatalln(err)
	}

	out := os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			stderr.Fatalf("failed to create an output file at %s: %v", c.Out, err)
		}
		defer f.Close()
		out = f
	}

	if err := WriteResults(out, results); err != nil {
		stderr.Fatalln(err)
	}

	if c.Verbose {
		stderr.Printf("wrote %d result rows", len(results))
	}
}

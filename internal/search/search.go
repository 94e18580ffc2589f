package search

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Ulthran/unassigner/internal/align"
	"github.com/Ulthran/unassigner/internal/fasta"
)

// stderr is for logging to the user
var stderr = log.New(os.Stderr, "", 0)

// Searcher runs blastn against the type strain database and extends the
// reported hits into full-length alignments.
type Searcher struct {
	// SpeciesFile is the path to the type strain FASTA. The formatted BLAST
	// database files are expected alongside it.
	SpeciesFile string

	// Threads is the number of threads blastn may use
	Threads int

	// MaxHits is the maximum number of candidates reported per query
	MaxHits int

	// SearchIdentity is the percent identity cutoff passed to blastn
	// (0 disables the cutoff)
	SearchIdentity int

	// Timeout bounds each call to an external binary (0 means no bound)
	Timeout time.Duration

	// InputFile and OutputFile, when set, are used for the search input and
	// output instead of temporary files and are kept after the run
	InputFile  string
	OutputFile string
}

// SearchSpecies searches the queries against the type strain database and
// returns one full-length alignment per repairable hit, in the order the
// search tool reported them.
func (s *Searcher) SearchSpecies(queries []fasta.Record) ([]align.Alignment, error) {
	// make sure the formatted database exists
	if _, err := os.Stat(s.SpeciesFile + ".nin"); os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to find a BLAST database for %s: run \"unassigner prepare\" or makeblastdb first", s.SpeciesFile)
	}

	in, removeIn, err := s.searchFile(s.InputFile, "unassigner.in-*")
	if err != nil {
		return nil, err
	}
	defer removeIn()

	out, removeOut, err := s.searchFile(s.OutputFile, "unassigner.out-*")
	if err != nil {
		return nil, err
	}
	defer removeOut()

	b := &blastExec{
		db:            s.SpeciesFile,
		in:            in,
		out:           out,
		identity:      s.SearchIdentity,
		maxTargetSeqs: s.MaxHits,
		threads:       s.Threads,
	}

	if err := b.input(queries); err != nil {
		return nil, fmt.Errorf("failed to write a BLAST input file at %s: %v", b.in.Name(), err)
	}

	ctx, cancel := s.context()
	defer cancel()
	if err := b.run(ctx); err != nil {
		return nil, err
	}

	output, err := os.ReadFile(out.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read BLAST output at %s: %v", out.Name(), err)
	}
	hits, err := parseHits(bytes.NewReader(output))
	if err != nil {
		return nil, err
	}

	species, err := fasta.Read(s.SpeciesFile)
	if err != nil {
		return nil, err
	}

	extender := align.NewExtender(queries, species)
	extender.Fetch = func(id string) (string, error) {
		fetchCtx, fetchCancel := s.context()
		defer fetchCancel()

		return FetchSeq(fetchCtx, s.SpeciesFile, id)
	}

	return extendHits(extender, hits), nil
}

// searchFile opens the file at path, or a throwaway temp file when path is
// empty. The returned cleanup removes the temp file and is a no-op for
// files the user asked to keep.
func (s *Searcher) searchFile(path, tempPattern string) (*os.File, func(), error) {
	if path == "" {
		f, err := os.CreateTemp("", tempPattern)
		if err != nil {
			return nil, nil, err
		}

		return f, func() { os.Remove(f.Name()) }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create search file at %s: %v", path, err)
	}

	return f, func() {}, nil
}

// context bounds an external call with the configured timeout.
func (s *Searcher) context() (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(context.Background(), s.Timeout)
	}

	return context.Background(), func() {}
}

// FileSearcher replays the saved tabular output of an earlier search rather
// than running blastn again.
type FileSearcher struct {
	// SpeciesFile is the path to the type strain FASTA
	SpeciesFile string

	// OutputFile is the saved tabular search output to replay
	OutputFile string
}

// SearchSpecies extends the saved hits against the passed queries, exactly
// as if the search had just run.
func (s *FileSearcher) SearchSpecies(queries []fasta.Record) ([]align.Alignment, error) {
	f, err := os.Open(s.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open saved search output: %v", err)
	}
	defer f.Close()

	hits, err := parseHits(f)
	if err != nil {
		return nil, err
	}

	species, err := fasta.Read(s.SpeciesFile)
	if err != nil {
		return nil, err
	}

	return extendHits(align.NewExtender(queries, species), hits), nil
}

// extendHits repairs each hit into a full-length alignment. A hit that
// cannot be repaired is dropped with a diagnostic naming the pair, so a
// single inconsistent row cannot sink the batch.
func extendHits(extender *align.Extender, hits []align.Hit) (alignments []align.Alignment) {
	for _, hit := range hits {
		a, err := extender.Extend(hit)
		if err != nil {
			stderr.Printf("dropping hit %s vs %s: %v", hit.QueryID, hit.SubjectID, err)
			continue
		}

		alignments = append(alignments, a)
	}

	return
}

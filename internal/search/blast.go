// Package search finds type strain candidates for query fragments with the
// NCBI BLAST+ binaries and repairs the resulting local hits into full-length
// alignments.
package search

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Ulthran/unassigner/internal/align"
	"github.com/Ulthran/unassigner/internal/fasta"
)

// blastFields is the tabular column layout requested from blastn.
// parseHits depends on this exact order.
const blastFields = "qseqid sseqid pident length mismatch gapopen qstart qend sstart send qlen slen qseq sseq"

// blastExec is a small utility object for executing BLAST.
type blastExec struct {
	// the path to the database we're BLASTing against
	db string

	// the input BLAST file
	in *os.File

	// the output BLAST file
	out *os.File

	// the percentage identity cutoff passed to blastn (0 disables it)
	identity int

	// the maximum number of hits reported per query
	maxTargetSeqs int

	// the number of threads blastn may use
	threads int
}

// input writes the query records to the blastn input file (FASTA).
func (b *blastExec) input(queries []fasta.Record) error {
	return fasta.Write(b.in, queries)
}

// run calls the external blastn binary on the input file.
func (b *blastExec) run(ctx context.Context) error {
	flags := []string{
		"-task", "blastn",
		"-db", b.db,
		"-query", b.in.Name(),
		"-out", b.out.Name(),
		"-outfmt", "6 " + blastFields,
		"-evalue", "1e-5",
		"-max_target_seqs", strconv.Itoa(b.maxTargetSeqs),
		"-num_threads", strconv.Itoa(b.threads),
	}
	if b.identity > 0 {
		flags = append(flags, "-perc_identity", strconv.Itoa(b.identity))
	}

	// https://www.ncbi.nlm.nih.gov/books/NBK279682/
	blastCmd := exec.CommandContext(ctx, "blastn", flags...)

	// execute BLAST and wait on it to finish
	if output, err := blastCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to execute blastn against %s: %v: %s", b.db, err, string(output))
	}

	return nil
}

// parseHits reads tabular blastn output into hits, preserving the order the
// search tool reported them in. Comment lines starting with a # are ignored.
func parseHits(r io.Reader) (hits []align.Hit, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Fields(line)
		if len(cols) != 14 {
			return nil, fmt.Errorf("failed to parse blast output line %d: %d columns, want 14", lineNo, len(cols))
		}

		hit := align.Hit{
			QueryID:    cols[0],
			SubjectID:  cols[1],
			QuerySeq:   cols[12],
			SubjectSeq: cols[13],
		}
		if hit.PercentID, err = strconv.ParseFloat(cols[2], 64); err != nil {
			return nil, fmt.Errorf("failed to parse blast output line %d: %v", lineNo, err)
		}

		ints := []struct {
			field *int
			col   string
		}{
			{&hit.Length, cols[3]},
			{&hit.Mismatches, cols[4]},
			{&hit.GapOpens, cols[5]},
			{&hit.QueryStart, cols[6]},
			{&hit.QueryEnd, cols[7]},
			{&hit.SubjectStart, cols[8]},
			{&hit.SubjectEnd, cols[9]},
			{&hit.QueryLen, cols[10]},
			{&hit.SubjectLen, cols[11]},
		}
		for _, f := range ints {
			if *f.field, err = strconv.Atoi(f.col); err != nil {
				return nil, fmt.Errorf("failed to parse blast output line %d: %v", lineNo, err)
			}
		}

		hits = append(hits, hit)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blast output: %v", err)
	}

	return hits, nil
}

// MakeDB builds a nucleotide BLAST database from the FASTA file at path.
// The database files are written next to the input file.
func MakeDB(ctx context.Context, path string) error {
	makeCmd := exec.CommandContext(ctx,
		"makeblastdb",
		"-dbtype", "nucl",
		"-in", path,
	)

	if output, err := makeCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to execute makeblastdb on %s: %v: %s", path, err, string(output))
	}

	return nil
}

// FetchSeq queries a full sequence by its FASTA entry name from a BLAST
// database.
func FetchSeq(ctx context.Context, db, entry string) (string, error) {
	// path to the entry batch file to hold the entry accession.
	// blastdbcmd's -entry flag mangles some accessions, -entry_batch on a
	// file does not
	entryFile, err := os.CreateTemp("", "blastdbcmd.in-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(entryFile.Name())

	output, err := os.CreateTemp("", "blastdbcmd.out-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(output.Name())

	if _, err := entryFile.WriteString(entry); err != nil {
		return "", fmt.Errorf("failed to write blastdbcmd entry file at %s: %v", entryFile.Name(), err)
	}

	queryCmd := exec.CommandContext(ctx,
		"blastdbcmd",
		"-db", db,
		"-dbtype", "nucl",
		"-entry_batch", entryFile.Name(),
		"-out", output.Name(),
		"-outfmt", "%f ", // fasta format
	)

	if _, err := queryCmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to query %s from %s: %v", entry, db, err)
	}

	records, err := fasta.Read(output.Name())
	if err != nil {
		return "", fmt.Errorf("failed to query %s from %s: %v", entry, db, err)
	}

	return records[0].Seq, nil
}

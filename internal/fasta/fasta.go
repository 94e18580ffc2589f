// Package fasta reads and writes FASTA formatted sequence files.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a single FASTA entry: an id line and its sequence.
type Record struct {
	// ID is the sequence identifier, the header up to the first whitespace
	ID string

	// Desc is the remainder of the header after the id (may be empty)
	Desc string

	// Seq is the sequence with newlines removed
	Seq string
}

// Parse reads every record from a FASTA formatted reader.
// Sequence lines are concatenated and surrounding whitespace is dropped.
func Parse(r io.Reader) (records []Record, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var rec Record
	inRecord := false
	var seq strings.Builder

	flush := func() {
		if inRecord {
			rec.Seq = seq.String()
			records = append(records, rec)
		}
		seq.Reset()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			flush()

			header := strings.TrimSpace(line[1:])
			id, desc := header, ""
			if i := strings.IndexAny(header, " \t"); i >= 0 {
				id, desc = header[:i], strings.TrimSpace(header[i+1:])
			}
			rec = Record{ID: id, Desc: desc}
			inRecord = true
			continue
		}

		if !inRecord {
			return nil, fmt.Errorf("failed to parse FASTA: sequence line before first header: %q", line)
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read FASTA: %v", err)
	}
	flush()

	return records, nil
}

// Read parses the FASTA file at path.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FASTA file: %v", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("failed to parse any records from %s", path)
	}

	return records, nil
}

// Write writes records to w in FASTA format, one header and one sequence
// line per record.
func Write(w io.Writer, records []Record) error {
	for _, rec := range records {
		header := rec.ID
		if rec.Desc != "" {
			header += " " + rec.Desc
		}
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", header, rec.Seq); err != nil {
			return fmt.Errorf("failed to write record %s: %v", rec.ID, err)
		}
	}

	return nil
}

// SeqMap keys each record's sequence by its id. Later duplicates of an id
// are ignored, matching the first-entry-wins behavior of BLAST databases.
func SeqMap(records []Record) map[string]string {
	seqs := make(map[string]string, len(records))
	for _, rec := range records {
		if _, seen := seqs[rec.ID]; !seen {
			seqs[rec.ID] = rec.Seq
		}
	}

	return seqs
}

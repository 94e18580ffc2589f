// Package refdb downloads and formats the reference databases: the Living
// Tree Project type strain sequences and the greengenes reference set.
package refdb

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/Ulthran/unassigner/internal/fasta"
	"github.com/Ulthran/unassigner/internal/search"
)

// stderr is for logging to the user
var stderr = log.New(os.Stderr, "", 0)

// Source URLs for the LTP release 119 type strain set and the greengenes
// 13_5 reference set.
const (
	LTPMetadataURL = "https://www.arb-silva.de/fileadmin/silva_databases/living_tree/LTP_release_119/LTPs119_SSU.csv"
	LTPSeqsURL     = "https://www.arb-silva.de/fileadmin/silva_databases/living_tree/LTP_release_119/LTPs119_SSU.compressed.fasta"

	GGSeqsURL       = "https://gg-sg-web.s3-us-west-2.amazonaws.com/downloads/greengenes_database/gg_13_5/gg_13_5.fasta.gz"
	GGAccessionsURL = "https://gg-sg-web.s3-us-west-2.amazonaws.com/downloads/greengenes_database/gg_13_5/gg_13_5_accessions.txt.gz"
)

// Formatted files written into the database directory.
const (
	// SpeciesFile holds the type strain sequences, one per accession
	SpeciesFile = "species.fasta"

	// RefseqsFile holds the deduplicated greengenes reference sequences
	RefseqsFile = "refseqs.fasta"

	// DuplicatesFile records the greengenes id groups that shared a sequence
	DuplicatesFile = "gg_duplicate_ids.txt"
)

// DB manages the reference files inside a directory.
type DB struct {
	// Dir is the directory downloads and formatted databases live in
	Dir string

	// Timeout bounds each download and external command (0 means no bound)
	Timeout time.Duration

	// Verbose logs progress to stderr
	Verbose bool
}

// Metadata is one row of the LTP metadata table.
type Metadata struct {
	// Accession of the type strain sequence
	Accession string

	// Fullname is the full species name
	Fullname string

	// TypeStrain is the strain designation
	TypeStrain string

	// Taxonomy is the LTP taxonomy string
	Taxonomy string
}

// Prepare downloads both reference sets and formats them into BLAST
// databases next to their FASTA files.
func (db *DB) Prepare(ctx context.Context) error {
	metaFile, err := db.download(ctx, LTPMetadataURL)
	if err != nil {
		return err
	}

	if db.Verbose {
		f, err := os.Open(metaFile)
		if err != nil {
			return err
		}
		meta, err := parseMetadata(f)
		f.Close()
		if err != nil {
			return err
		}
		stderr.Printf("downloaded metadata for %d type strain seqs", len(meta))
	}

	seqsFile, err := db.download(ctx, LTPSeqsURL)
	if err != nil {
		return err
	}
	if err := db.processLTPSeqs(ctx, seqsFile); err != nil {
		return err
	}

	ggSeqsFile, err := db.download(ctx, GGSeqsURL)
	if err != nil {
		return err
	}
	ggAccessionsFile, err := db.download(ctx, GGAccessionsURL)
	if err != nil {
		return err
	}

	return db.processGreengenesSeqs(ctx, ggSeqsFile, ggAccessionsFile)
}

// Clean removes every downloaded and derived reference file that exists.
func (db *DB) Clean() error {
	files := []string{
		filepath.Join(db.Dir, urlFile(LTPMetadataURL)),
		filepath.Join(db.Dir, urlFile(LTPSeqsURL)),
		filepath.Join(db.Dir, urlFile(GGSeqsURL)),
		filepath.Join(db.Dir, gunzipFile(urlFile(GGSeqsURL))),
		filepath.Join(db.Dir, urlFile(GGAccessionsURL)),
		filepath.Join(db.Dir, gunzipFile(urlFile(GGAccessionsURL))),
		filepath.Join(db.Dir, SpeciesFile),
		filepath.Join(db.Dir, RefseqsFile),
		filepath.Join(db.Dir, DuplicatesFile),
	}
	files = append(files, blastFiles(filepath.Join(db.Dir, SpeciesFile))...)
	files = append(files, blastFiles(filepath.Join(db.Dir, RefseqsFile))...)

	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %v", f, err)
		}
	}

	return nil
}

// download fetches a url into the database directory, named after the last
// segment of the url path.
func (db *DB) download(ctx context.Context, url string) (string, error) {
	target := filepath.Join(db.Dir, urlFile(url))

	if db.Verbose {
		stderr.Printf("downloading %s", url)
	}

	ctx, cancel := db.context(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}

	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to download %s to %s: %v", url, target, err)
	}

	return target, nil
}

// processLTPSeqs writes the type strain sequences relabeled by accession and
// formats them into a BLAST database.
func (db *DB) processLTPSeqs(ctx context.Context, seqsFile string) error {
	records, err := fasta.Read(seqsFile)
	if err != nil {
		return err
	}

	// keep the accession, drop the rest of the header
	for i := range records {
		records[i].Desc = ""
	}

	speciesFile := filepath.Join(db.Dir, SpeciesFile)
	out, err := os.Create(speciesFile)
	if err != nil {
		return err
	}
	if err := fasta.Write(out, records); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if db.Verbose {
		stderr.Printf("writing %d type strain seqs to %s", len(records), speciesFile)
	}

	ctx, cancel := db.context(ctx)
	defer cancel()

	return search.MakeDB(ctx, speciesFile)
}

// processGreengenesSeqs deduplicates the greengenes sequences, relabels them
// by accession and formats them into a BLAST database. Ids that shared a
// sequence are recorded in the duplicates file, one group per line.
func (db *DB) processGreengenesSeqs(ctx context.Context, seqsFile, accessionsFile string) error {
	accessionsFile, err := db.gunzip(accessionsFile)
	if err != nil {
		return err
	}
	seqsFile, err = db.gunzip(seqsFile)
	if err != nil {
		return err
	}

	accFile, err := os.Open(accessionsFile)
	if err != nil {
		return err
	}
	accessions, err := parseAccessions(accFile)
	accFile.Close()
	if err != nil {
		return fmt.Errorf("failed to parse %s: %v", accessionsFile, err)
	}

	records, err := fasta.Read(seqsFile)
	if err != nil {
		return err
	}

	refseqsFile := filepath.Join(db.Dir, RefseqsFile)
	out, err := os.Create(refseqsFile)
	if err != nil {
		return err
	}
	defer out.Close()

	duplicatesFile := filepath.Join(db.Dir, DuplicatesFile)
	dups, err := os.Create(duplicatesFile)
	if err != nil {
		return err
	}
	defer dups.Close()

	written, err := writeRefseqs(records, accessions, out, dups)
	if err != nil {
		return err
	}

	if db.Verbose {
		stderr.Printf("writing %d reference seqs to %s", written, refseqsFile)
	}

	ctx, cancel := db.context(ctx)
	defer cancel()

	return search.MakeDB(ctx, refseqsFile)
}

// writeRefseqs collapses records that share a sequence (first id wins),
// relabels each kept record by its accession and writes it to out. Id
// groups that shared a sequence go to dups, one space separated group per
// line. Returns the number of records written.
func writeRefseqs(records []fasta.Record, accessions map[string]accession, out, dups io.Writer) (int, error) {
	firstID := make(map[string]string, len(records))
	groups := make(map[string][]string, len(records))
	var order []string
	for _, rec := range records {
		if _, seen := firstID[rec.Seq]; !seen {
			firstID[rec.Seq] = rec.ID
			order = append(order, rec.Seq)
		}
		groups[rec.Seq] = append(groups[rec.Seq], rec.ID)
	}

	for _, seq := range order {
		ggID := firstID[seq]
		if ids := groups[seq]; len(ids) > 1 {
			if _, err := fmt.Fprintln(dups, strings.Join(ids, " ")); err != nil {
				return 0, fmt.Errorf("failed to write duplicate id group: %v", err)
			}
		}

		acc, ok := accessions[ggID]
		if !ok {
			return 0, fmt.Errorf("failed to find an accession for greengenes id %s", ggID)
		}

		rec := fasta.Record{ID: acc.id, Desc: acc.src + " " + ggID, Seq: seq}
		if err := fasta.Write(out, []fasta.Record{rec}); err != nil {
			return 0, err
		}
	}

	return len(order), nil
}

// gunzip decompresses a .gz file next to itself and removes the archive.
// Files without the .gz suffix pass through untouched.
func (db *DB) gunzip(file string) (string, error) {
	if !strings.HasSuffix(file, ".gz") {
		return file, nil
	}

	in, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("failed to decompress %s: %v", file, err)
	}
	defer zr.Close()

	target := gunzipFile(file)
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, zr); err != nil {
		return "", fmt.Errorf("failed to decompress %s to %s: %v", file, target, err)
	}

	return target, os.Remove(file)
}

// accession is one greengenes id's source database and accession number.
type accession struct {
	src string
	id  string
}

// parseAccessions reads the greengenes accessions table: one tab separated
// row of greengenes id, source database and accession per line.
func parseAccessions(r io.Reader) (map[string]accession, error) {
	accessions := make(map[string]accession)

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = 3
	cr.LazyQuotes = true

	for {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		accessions[cols[0]] = accession{src: cols[1], id: cols[2]}
	}

	return accessions, nil
}

// parseMetadata reads the tab separated LTP metadata table (12 columns).
func parseMetadata(r io.Reader) ([]Metadata, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 12
	cr.LazyQuotes = true

	var meta []Metadata
	for {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		meta = append(meta, Metadata{
			Accession:  cols[0],
			Fullname:   cols[4],
			TypeStrain: cols[5],
			Taxonomy:   cols[9],
		})
	}

	return meta, nil
}

// context bounds an external call with the configured timeout.
func (db *DB) context(parent context.Context) (context.Context, context.CancelFunc) {
	if db.Timeout > 0 {
		return context.WithTimeout(parent, db.Timeout)
	}

	return parent, func() {}
}

// urlFile is the local file name for a url: its last path segment.
func urlFile(url string) string {
	return path.Base(url)
}

// gunzipFile is the file name of a .gz archive's contents.
func gunzipFile(file string) string {
	return strings.TrimSuffix(file, ".gz")
}

// blastFiles lists the database files makeblastdb derives from a FASTA file.
func blastFiles(file string) []string {
	return []string{file + ".nhr", file + ".nin", file + ".nsq"}
}

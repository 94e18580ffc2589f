package refdb

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/Ulthran/unassigner/internal/fasta"
)

func Test_parseAccessions(t *testing.T) {
	type args struct {
		table string
	}
	tests := []struct {
		name    string
		args    args
		want    map[string]accession
		wantErr bool
	}{
		{
			"typical table",
			args{"# gg_id\tdb_name\taccession\n" +
				"4\tGenbank\tAB008503.1\n" +
				"7\tGenbank\tAB010863.1\n"},
			map[string]accession{
				"4": {src: "Genbank", id: "AB008503.1"},
				"7": {src: "Genbank", id: "AB010863.1"},
			},
			false,
		},
		{
			"wrong column count",
			args{"4\tGenbank\n"},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAccessions(strings.NewReader(tt.args.table))
			if (err != nil) != tt.wantErr {
				t.Errorf("parseAccessions() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseAccessions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_parseMetadata(t *testing.T) {
	row := func(acc, fullname, typeStrain, tax string) string {
		return strings.Join([]string{
			acc, "1", "1492", "x", fullname, typeStrain,
			"Bacteria", "1", "http://example.org", tax, "100", "90",
		}, "\t")
	}

	table := row("AB681979", "Abiotrophia defectiva", "ATCC 49176", "Bacteria;Firmicutes") + "\n" +
		row("AB680527", "Acetobacter aceti", "NBRC 14818", "Bacteria;Proteobacteria") + "\n"

	meta, err := parseMetadata(strings.NewReader(table))
	if err != nil {
		t.Fatalf("parseMetadata() error = %v", err)
	}

	want := []Metadata{
		{Accession: "AB681979", Fullname: "Abiotrophia defectiva", TypeStrain: "ATCC 49176", Taxonomy: "Bacteria;Firmicutes"},
		{Accession: "AB680527", Fullname: "Acetobacter aceti", TypeStrain: "NBRC 14818", Taxonomy: "Bacteria;Proteobacteria"},
	}
	if !reflect.DeepEqual(meta, want) {
		t.Errorf("parseMetadata() = %v, want %v", meta, want)
	}
}

func Test_writeRefseqs(t *testing.T) {
	records := []fasta.Record{
		{ID: "g1", Seq: "ACGTACGTACGT"},
		{ID: "g2", Seq: "ACGTACGTACGT"},
		{ID: "g3", Seq: "TTTTACGTACGT"},
	}
	accessions := map[string]accession{
		"g1": {src: "Genbank", id: "X00001.1"},
		"g3": {src: "IMG", id: "X00003.1"},
	}

	var out, dups bytes.Buffer
	written, err := writeRefseqs(records, accessions, &out, &dups)
	if err != nil {
		t.Fatalf("writeRefseqs() error = %v", err)
	}

	if written != 2 {
		t.Errorf("writeRefseqs() wrote %d records, want 2", written)
	}

	wantOut := ">X00001.1 Genbank g1\nACGTACGTACGT\n" +
		">X00003.1 IMG g3\nTTTTACGTACGT\n"
	if out.String() != wantOut {
		t.Errorf("writeRefseqs() output:\n%s\nwant:\n%s", out.String(), wantOut)
	}

	if dups.String() != "g1 g2\n" {
		t.Errorf("duplicate groups = %q, want %q", dups.String(), "g1 g2\n")
	}
}

func Test_writeRefseqs_missingAccession(t *testing.T) {
	records := []fasta.Record{{ID: "g9", Seq: "ACGT"}}

	var out, dups bytes.Buffer
	if _, err := writeRefseqs(records, map[string]accession{}, &out, &dups); err == nil {
		t.Error("writeRefseqs() error = nil, want a missing accession error")
	}
}

func Test_gunzip(t *testing.T) {
	dir := t.TempDir()
	db := &DB{Dir: dir}

	// build a small archive to unpack
	archive := filepath.Join(dir, "accessions.txt.gz")
	f, err := os.Create(archive)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte("4\tGenbank\tAB008503.1\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	target, err := db.gunzip(archive)
	if err != nil {
		t.Fatalf("gunzip() error = %v", err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "4\tGenbank\tAB008503.1\n" {
		t.Errorf("gunzip() content = %q", string(content))
	}

	// the archive itself is gone
	if _, err := os.Stat(archive); !os.IsNotExist(err) {
		t.Errorf("archive %s still exists after gunzip", archive)
	}

	// files that aren't archives pass through
	passthrough, err := db.gunzip(target)
	if err != nil || passthrough != target {
		t.Errorf("gunzip() passthrough = (%q, %v), want (%q, nil)", passthrough, err, target)
	}
}

func Test_Clean(t *testing.T) {
	dir := t.TempDir()
	db := &DB{Dir: dir}

	// cleaning an empty directory is fine
	if err := db.Clean(); err != nil {
		t.Fatalf("Clean() on empty dir error = %v", err)
	}

	leftovers := []string{
		SpeciesFile,
		SpeciesFile + ".nin",
		RefseqsFile,
		DuplicatesFile,
		"gg_13_5.fasta",
	}
	for _, name := range leftovers {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := db.Clean(); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	for _, name := range leftovers {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s still exists after Clean()", name)
		}
	}
}

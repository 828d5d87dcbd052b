package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"footstats-collector/internal/flatten"
	"footstats-collector/internal/testutil"
)

func writeRecords(t *testing.T, w *Writer, path string, records []flatten.Record) {
	t.Helper()
	if err := w.Write(records, path); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWriteCreatesDirectoriesAndBOM(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil)
	path := w.Layout().Path("scorers", "BSA", "2022", "scorers_BSA_2022.csv")

	writeRecords(t, w, path, []flatten.Record{
		flatten.NewRecord("player.name", "Pedro", "goals", "29"),
		flatten.NewRecord("player.name", "Hulk", "assists", "4"),
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("expected UTF-8 BOM, got % x", data[:3])
	}
	want := "\ufeffplayer.name,goals,assists\nPedro,29,\nHulk,,4\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteOverwritesPreviousContent(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	path := w.Layout().Path("matches", "PPL", "2023", "matches_PPL_2023.csv")

	writeRecords(t, w, path, []flatten.Record{flatten.NewRecord("id", "1"), flatten.NewRecord("id", "2")})
	writeRecords(t, w, path, []flatten.Record{flatten.NewRecord("id", "3")})

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the second batch, got %d records", len(got))
	}
	if v, _ := got[0].Get("id"); v != "3" {
		t.Fatalf("expected id 3, got %q", v)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone, got %v", err)
	}
}

func TestWriteEmptyIsNoop(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil)
	path := w.Layout().Path("scorers", "MLS", "2016", "scorers_MLS_2016.csv")

	if err := w.Write(nil, path); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); !os.IsNotExist(err) {
		t.Fatalf("expected no directory to be created, got %v", err)
	}
}

func TestRoundTripPreservesValues(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	path := w.Layout().Path("teams", "BL1", "2024", "teams.csv")
	in := []flatten.Record{
		flatten.NewRecord("name", "Bayern München", "founded", "1900", "address", "Säbener Straße 51, \"München\""),
		flatten.NewRecord("name", "Köln", "founded", "1948"),
	}
	writeRecords(t, w, path, in)

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(out))
	}
	for i := range in {
		for _, col := range in[i].Columns() {
			want, _ := in[i].Get(col)
			got, _ := out[i].Get(col)
			if got != want {
				t.Fatalf("record %d column %s: got %q, want %q", i, col, got, want)
			}
		}
	}
}

func TestNilWriterErrors(t *testing.T) {
	var w *Writer
	if err := w.Write([]flatten.Record{flatten.NewRecord("a", "1")}, "x.csv"); err == nil {
		t.Fatal("expected error from nil writer")
	}
}

func TestManifestTracksWrittenFiles(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	path := w.Layout().Path("scorers", "BSA", "2022", "scorers_BSA_2022.csv")
	writeRecords(t, w, path, []flatten.Record{flatten.NewRecord("a", "1")})
	writeRecords(t, w, path, []flatten.Record{flatten.NewRecord("a", "1"), flatten.NewRecord("a", "2")})

	m, err := ReadManifest(root)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	meta, ok := m.Kinds["scorers"]
	if !ok {
		t.Fatalf("expected scorers kind in manifest, got %+v", m.Kinds)
	}
	want := []FileMeta{{Path: "scorers/BSA/2022/scorers_BSA_2022.csv", Rows: 2, WrittenAt: fixed}}
	if diff := cmp.Diff(want, meta.Files); diff != "" {
		t.Fatalf("manifest files mismatch (-want +got):\n%s", diff)
	}
	if !meta.LastRefreshed.Equal(fixed) {
		t.Fatalf("expected last refreshed %v, got %v", fixed, meta.LastRefreshed)
	}
}

func TestLayoutSanitizesSegments(t *testing.T) {
	l := Layout{Root: "data"}
	got := l.Path("fbref", "Big 5 European Leagues Combined", "2022/2023", "standard.csv")
	want := filepath.Join("data", "fbref", "Big 5 European Leagues Combined", "2022_2023", "standard.csv")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if seg := segment(".."); seg != "_" {
		t.Fatalf("expected parent segment to be neutralized, got %q", seg)
	}
}

func TestManifestFailureDoesNotFailWrite(t *testing.T) {
	root := t.TempDir()
	// a directory where the manifest temp file goes makes the update fail
	if err := os.MkdirAll(filepath.Join(root, manifestName+".tmp"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	logger, buf := testutil.NewBufferLogger()
	w := NewWriter(root, logger)

	path := w.Layout().Path("teams", "BSA", "2023", "teams_BSA_2023.csv")
	if err := w.Write([]flatten.Record{flatten.NewRecord("a", "1")}, path); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected csv in place: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("manifest update failed")) {
		t.Fatalf("expected manifest warning, got %s", buf.String())
	}
}

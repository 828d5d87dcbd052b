package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const manifestName = "manifest.json"

// Manifest indexes the files written under the root. It is informational
// and never consulted to skip work.
type Manifest struct {
	Version     int                 `json:"version"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Kinds       map[string]KindMeta `json:"kinds"`
}

// KindMeta lists the files of one endpoint kind.
type KindMeta struct {
	Files         []FileMeta `json:"files"`
	LastRefreshed time.Time  `json:"lastRefreshed"`
}

// FileMeta describes one written file relative to the root.
type FileMeta struct {
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	WrittenAt time.Time `json:"writtenAt"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: 1,
		Kinds:   map[string]KindMeta{},
	}
}

// ReadManifest loads the manifest under root, returning an empty one when absent.
func ReadManifest(root string) (Manifest, error) {
	f, err := os.Open(filepath.Join(root, manifestName))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	m := defaultManifest()
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Kinds == nil {
		m.Kinds = map[string]KindMeta{}
	}
	return m, nil
}

func writeManifest(root string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	path := filepath.Join(root, manifestName)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (w *Writer) updateManifest(path string, rows int) error {
	root := w.layout.Root
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		// outside the root; nothing to index
		return nil
	}
	rel = filepath.ToSlash(rel)
	kind, _, _ := strings.Cut(rel, "/")

	m, _ := ReadManifest(root)
	now := w.now().UTC()

	meta := m.Kinds[kind]
	entry := FileMeta{Path: rel, Rows: rows, WrittenAt: now}
	replaced := false
	for i := range meta.Files {
		if meta.Files[i].Path == entry.Path {
			meta.Files[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		meta.Files = append(meta.Files, entry)
	}
	sort.Slice(meta.Files, func(i, j int) bool { return meta.Files[i].Path < meta.Files[j].Path })
	meta.LastRefreshed = now
	m.Kinds[kind] = meta

	return writeManifest(root, m, now)
}

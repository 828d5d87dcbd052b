package output

import (
	"path/filepath"
	"strings"
)

// Layout builds <root>/<kind>/<entity>/<season>/<file> paths.
type Layout struct {
	Root string
}

// Path returns the destination for one target's file.
func (l Layout) Path(kind, entity, season, file string) string {
	return filepath.Join(l.Root, segment(kind), segment(entity), segment(season), segment(file))
}

var segmentReplacer = strings.NewReplacer("/", "_", "\\", "_")

func segment(s string) string {
	s = strings.TrimSpace(segmentReplacer.Replace(s))
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"footstats-collector/internal/flatten"
)

// ReadFile loads a file produced by Writer back into records. Every
// value comes back as the string that was written.
func ReadFile(path string) ([]flatten.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []flatten.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		var rec flatten.Record
		for i, col := range header {
			rec.Set(col, row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

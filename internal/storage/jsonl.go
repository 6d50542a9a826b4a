package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ExportJSONL writes every publication, fully hydrated, as one JSON object
// per line in list order.
func (d *DB) ExportJSONL(w io.Writer) (int, error) {
	pubs, err := d.ListPublications(ListOptions{IncludeHidden: true})
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	count := 0
	for i := range pubs {
		full, err := d.GetBySlug(pubs[i].Slug)
		if err != nil {
			return count, err
		}
		line, err := json.Marshal(full)
		if err != nil {
			return count, fmt.Errorf("encoding publication %q: %w", pubs[i].Slug, err)
		}
		if _, err := bw.Write(append(line, '\n')); err != nil {
			return count, fmt.Errorf("writing JSONL: %w", err)
		}
		count++
	}
	return count, bw.Flush()
}

// ExportJSONLFile writes the JSONL export to a file path.
func (d *DB) ExportJSONLFile(path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return d.ExportJSONL(f)
}

// Package snapshot loads the document snapshot used by the fallback search path
// and keeps it swappable at runtime.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/catalogsearch/backend/internal/catalog"
	"github.com/catalogsearch/backend/internal/domain"
)

// ReadDocuments reads a JSON array of raw product documents from path.
// Files ending in .gz are gunzipped. A missing or empty file yields no
// documents and no error. Array elements that are not objects are skipped
// and counted in the second return value.
func ReadDocuments(path string) ([]domain.RawDocument, int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.RawDocument{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", domain.ErrSnapshotDecode, path, err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.RawDocument{}, 0, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", domain.ErrSnapshotDecode, path, err)
	}

	docs := make([]domain.RawDocument, 0, len(elements))
	skipped := 0
	for _, el := range elements {
		var doc domain.RawDocument
		if err := json.Unmarshal(el, &doc); err != nil || doc == nil {
			skipped++
			continue
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

// Load reads and normalizes the snapshot at path
func Load(path string) (*domain.Snapshot, error) {
	docs, skipped, err := ReadDocuments(path)
	if err != nil {
		return nil, err
	}

	products, rejected := catalog.NormalizeAll(docs)
	return &domain.Snapshot{
		Products: products,
		Source:   path,
		LoadedAt: time.Now(),
		Rejected: rejected + skipped,
	}, nil
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cast"

	"github.com/catalogsearch/backend/internal/colors"
	"github.com/catalogsearch/backend/internal/domain"
	"github.com/catalogsearch/backend/internal/infrastructure/snapshot"
	"github.com/catalogsearch/backend/internal/usecase"
)

// groupFile reads the snapshot at path and groups its raw items by inferred color.
// Items keep their input order inside each group.
func groupFile(path string) (map[string][]map[string]any, int, error) {
	docs, skipped, err := snapshot.ReadDocuments(path)
	if err != nil {
		return nil, 0, err
	}
	return groupByColor(docs), skipped, nil
}

func groupByColor(docs []domain.RawDocument) map[string][]map[string]any {
	groups := make(map[string][]map[string]any)
	for _, doc := range docs {
		c := colors.Infer(cast.ToString(doc["url"]))
		groups[c] = append(groups[c], map[string]any(doc))
	}
	return groups
}

// countBuckets returns group sizes ordered by count desc, then color name
func countBuckets(groups map[string][]map[string]any) []domain.Bucket {
	buckets := make([]domain.Bucket, 0, len(groups))
	for k, items := range groups {
		buckets = append(buckets, domain.Bucket{Key: k, DocCount: len(items)})
	}
	return usecase.SortBuckets(buckets)
}

func writeGroups(path string, groups map[string][]map[string]any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(groups); err != nil {
		return fmt.Errorf("encode groups: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package github

import (
	"context"
	"strings"
)

// docFilter narrows a ContentSource to paths with a given extension, so
// content is never fetched for files the pipeline will not forward.
type docFilter struct {
	ContentSource
	ext string
}

// FilterExtension wraps src so ChangedPaths only reports paths ending in ext.
// An empty ext returns src unchanged.
func FilterExtension(src ContentSource, ext string) ContentSource {
	if ext == "" {
		return src
	}
	return docFilter{ContentSource: src, ext: ext}
}

func (f docFilter) ChangedPaths(ctx context.Context, base, head string) ([]string, error) {
	paths, err := f.ContentSource.ChangedPaths(ctx, base, head)
	if err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasSuffix(p, f.ext) {
			docs = append(docs, p)
		}
	}
	return docs, nil
}

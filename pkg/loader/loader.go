// Package loader reads cassette files from disk into document trees and
// discovers candidate files for a channel. It is the only part of the
// system that touches the filesystem; everything downstream works on the
// immutable in-memory tree.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/vcrx/internal/document"
)

// LoadBytes parses raw cassette bytes into a document tree. YAML and JSON
// cassettes both go through the YAML decoder, which preserves mapping key
// order; the file extension is irrelevant.
func LoadBytes(data []byte) (*document.Node, error) {
	return document.Decode(data)
}

// LoadFile reads and parses one cassette file.
func LoadFile(path string) (*document.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	node, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

// LoadFileWithLogger is LoadFile with parse diagnostics recorded on lgr.
func LoadFileWithLogger(path string, lgr logr.Logger) (*document.Node, error) {
	node, err := LoadFile(path)
	if err != nil {
		lgr.V(1).Info("cassette load failed", "file", path, "reason", err.Error())
		return nil, err
	}
	lgr.V(1).Info("cassette loaded", "file", path)
	return node, nil
}

// Discover walks dir and returns the files matching any of the channel's
// glob patterns, sorted and de-duplicated. Patterns use doublestar syntax:
// "**/*.yaml" matches any .yaml file at any depth, including the top level;
// plain patterns match relative to dir.
func Discover(dir string, globs []string) ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, g := range globs {
			if ok, _ := doublestar.Match(g, rel); ok {
				seen[p] = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

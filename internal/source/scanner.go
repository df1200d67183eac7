package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir discovers importable files. A file path is returned as-is when its
// extension is supported; a directory is walked for *.csv and *.jsonl files.
func ScanDir(path string) ([]DiscoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if f, ok := discover(path); ok {
			return []DiscoveredFile{f}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if f, ok := discover(p); ok {
			files = append(files, f)
		}
		return nil
	})

	// Deterministic import order
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func discover(path string) (DiscoveredFile, bool) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case FormatCSV:
		return DiscoveredFile{Path: path, Format: FormatCSV}, true
	case FormatJSONL, ".ndjson":
		return DiscoveredFile{Path: path, Format: FormatJSONL}, true
	}
	return DiscoveredFile{}, false
}

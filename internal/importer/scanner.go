// Package importer bulk-loads expenses from exported JSON files into
// the store, skipping files that have not changed since the last run.
package importer

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveredFile is an export file found during directory scanning.
type DiscoveredFile struct {
	Path      string
	MtimeNs   int64
	SizeBytes int64
}

// ScanDir walks a directory tree and discovers all .json expense
// export files. Unreadable entries are skipped silently.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		files = append(files, DiscoveredFile{
			Path:      path,
			MtimeNs:   fi.ModTime().UnixNano(),
			SizeBytes: fi.Size(),
		})
		return nil
	})

	return files, err
}

package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// Search walks the workspace for file names containing the query,
// case-insensitive, stopping after maxResults matches.
func (w *Workspace) Search(query string, maxResults int) ([]*FileEntry, error) {
	query = strings.ToLower(query)
	results := []*FileEntry{}

	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if len(results) >= maxResults {
			return filepath.SkipAll
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == w.root || info.IsDir() {
			return nil
		}
		if strings.Contains(strings.ToLower(info.Name()), query) {
			rel, _ := filepath.Rel(w.root, path)
			results = append(results, &FileEntry{
				Name:     info.Name(),
				Path:     rel,
				Size:     info.Size(),
				Modified: info.ModTime(),
			})
		}
		return nil
	})
	return results, err
}

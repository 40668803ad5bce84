package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileEntry describes one file or directory inside the workspace
type FileEntry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
}

var subtitleExtensions = map[string]bool{
	".srt": true, ".vtt": true, ".json": true,
}

var artifactExtensions = map[string]bool{
	".html": true, ".srt": true, ".vtt": true,
	".ass": true, ".docx": true, ".json": true,
}

// IsSubtitleFile reports whether the name has an importable subtitle extension
func IsSubtitleFile(name string) bool {
	return subtitleExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsArtifactFile reports whether the name has an export artifact extension
func IsArtifactFile(name string) bool {
	return artifactExtensions[strings.ToLower(filepath.Ext(name))]
}

// Workspace is the on-disk store for uploaded subtitles and export artifacts
type Workspace struct {
	root string
}

func NewWorkspace(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, err
	}
	return &Workspace{root: abs}, nil
}

func (w *Workspace) Root() string { return w.root }

// Resolve maps a workspace-relative path to an absolute one.
// Prevents path traversal outside the workspace root.
func (w *Workspace) Resolve(relPath string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(w.root, relPath))
	if err != nil {
		return "", err
	}
	if abs != w.root && !strings.HasPrefix(abs, w.root+string(filepath.Separator)) {
		return "", os.ErrPermission
	}
	return abs, nil
}

// StoreUpload saves an uploaded subtitle under its base name, de-duplicating
// with a short random suffix on collision. Returns the workspace-relative path.
func (w *Workspace) StoreUpload(name string, data []byte) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if !IsSubtitleFile(base) {
		return "", fmt.Errorf("unsupported subtitle file %q", base)
	}

	target, err := w.Resolve(base)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(target); err == nil {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		base = fmt.Sprintf("%s_%s%s", stem, uuid.New().String()[:8], ext)
		if target, err = w.Resolve(base); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", err
	}
	return base, nil
}

// Save writes data at a workspace-relative path, creating parent directories
func (w *Workspace) Save(relPath string, data []byte) error {
	full, err := w.Resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

// Read returns the contents of a workspace file
func (w *Workspace) Read(relPath string) ([]byte, error) {
	full, err := w.Resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// Delete removes a workspace file
func (w *Workspace) Delete(relPath string) error {
	full, err := w.Resolve(relPath)
	if err != nil {
		return err
	}
	info, err := os.Stat(full)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", relPath)
	}
	return os.Remove(full)
}

// List returns the entries of a workspace directory, hidden files skipped
func (w *Workspace) List(relPath string) ([]*FileEntry, error) {
	full, err := w.Resolve(relPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, err
	}

	result := []*FileEntry{}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		fe := &FileEntry{
			Name:  entry.Name(),
			Path:  filepath.Join(relPath, entry.Name()),
			IsDir: entry.IsDir(),
		}
		if !entry.IsDir() {
			fe.Size = info.Size()
			fe.Modified = info.ModTime()
		}
		result = append(result, fe)
	}
	return result, nil
}

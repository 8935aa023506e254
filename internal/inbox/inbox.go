// Package inbox processes OCR text files dropped into the ledger's inbox
// directory, turning payment-app screenshot text into ledger transactions.
package inbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a text file in the inbox directory.
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	MtimeNs int64
}

// Scan returns .txt files in <root>/<inboxDir>/. A missing directory is an
// empty inbox.
func Scan(root, inboxDir string) ([]FileInfo, error) {
	dir := filepath.Join(root, inboxDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			MtimeNs: info.ModTime().UnixNano(),
		})
	}
	return files, nil
}

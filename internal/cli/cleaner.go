package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/compass/internal/models"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileNames []string
}

// NewCleaner creates a cleaner removing the files a generate run writes
func NewCleaner() *Cleaner {
	return &Cleaner{fileNames: models.GeneratedFileNames()}
}

// CleanGeneratedFiles removes the generated files from the given
// directories. A "dir/..." pattern also cleans every subdirectory.
// It returns the removed paths.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removed []string

	for _, dir := range directories {
		if err := c.cleanDirectory(dir, &removed); err != nil {
			return removed, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return removed, nil
}

func (c *Cleaner) cleanDirectory(dir string, removed *[]string) error {
	if base, ok := strings.CutSuffix(dir, "/..."); ok {
		if base == "" {
			base = "."
		}
		return c.cleanRecursively(base, removed)
	}
	return c.cleanSingleDirectory(dir, removed)
}

func (c *Cleaner) cleanRecursively(baseDir string, removed *[]string) error {
	return filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtrees are skipped
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != baseDir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "vendor") {
			return filepath.SkipDir
		}
		return c.cleanSingleDirectory(path, removed)
	})
}

func (c *Cleaner) cleanSingleDirectory(dir string, removed *[]string) error {
	for _, name := range c.fileNames {
		file := filepath.Join(dir, name)

		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to check file %s: %w", file, err)
		}

		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", file, err)
		}
		*removed = append(*removed, file)
	}
	return nil
}

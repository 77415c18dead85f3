package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"localtofield/internal/refactor"
	"localtofield/internal/source"
)

// skippedDirs are build outputs and VCS metadata never worth scanning.
var skippedDirs = map[string]bool{
	".git": true, ".vs": true, "bin": true, "obj": true, "node_modules": true,
}

// ListSourceFiles expands files and directories into a sorted, de-duplicated
// list of *.cs files.
func ListSourceFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skippedDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".cs") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// LoadDocument reads and parses a file. The path is made absolute so the
// journal can restore it from any working directory.
func LoadDocument(path string) (*refactor.Document, error) {
	abs, err := source.AbsolutePath(path)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(abs)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return refactor.NewDocument(fileSet.Get(id)), nil
}

package batch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// Discover walks the given roots and collects candidate plan files. A root
// that is itself a file is taken as-is; directories are walked recursively
// for .json files, skipping hidden directories. The result is sorted and
// de-duplicated so runs are deterministic.
func Discover(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if path == root || isPlanCandidate(d.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "walk %s", root)
		}
	}

	sort.Strings(files)
	return files, nil
}

// isPlanCandidate filters directory entries down to plan exports.
func isPlanCandidate(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json") && !strings.HasPrefix(name, ".")
}

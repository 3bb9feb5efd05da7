package media

import (
	"os"
	"path/filepath"
	"sort"
)

// Collect expands dropped paths into absolute media file paths.
// Files are kept in the order given; directories are walked recursively
// and their media files appended sorted by path. Non-media files are skipped.
func Collect(paths []string) ([]string, error) {
	var result []string
	for _, p := range paths {
		p = Abs(p)
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if IsMediaFile(p) {
				result = append(result, p)
			}
			continue
		}

		found, err := collectDir(p)
		if err != nil {
			return nil, err
		}
		result = append(result, found...)
	}
	return result, nil
}

func collectDir(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip unreadable entries, continue walking
			return nil //nolint:nilerr // intentionally skipping errors
		}
		if d.IsDir() || !IsMediaFile(path) {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// ToFiles builds Files for paths, stopping at the first stat failure.
func ToFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := ToFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Package scan discovers Terraform configuration files on disk and groups
// them into per-directory deployment units.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Unit is one deployment directory: every configuration file it contains,
// in sorted order so multi-file merges are reproducible.
type Unit struct {
	Dir   string
	Files []string
}

// skipDirs are directory names that never hold user configuration.
var skipDirs = map[string]bool{
	".terraform":   true,
	"node_modules": true,
}

// Discover walks root and returns one unit per directory containing at
// least one .tf or .tf.json file. Hidden directories are skipped. Units and
// their files are sorted by path.
func Discover(root string) ([]Unit, error) {
	byDir := make(map[string][]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if isConfigFile(d.Name()) {
			dir := filepath.Dir(path)
			byDir[dir] = append(byDir[dir], path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	units := make([]Unit, 0, len(dirs))
	for _, dir := range dirs {
		files := byDir[dir]
		sort.Strings(files)
		units = append(units, Unit{Dir: dir, Files: files})
	}
	return units, nil
}

func isConfigFile(name string) bool {
	return strings.HasSuffix(name, ".tf") || strings.HasSuffix(name, ".tf.json")
}

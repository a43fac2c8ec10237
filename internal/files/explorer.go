package files

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"codeexplainer/internal/models"
	"codeexplainer/internal/repotree"

	"github.com/sirupsen/logrus"
)

// LocalTree lists rootDir recursively and nests it the same way remote repository
// trees are nested. Entries hidden by filter are pruned, directories included.
func LocalTree(rootDir string, filter *repotree.Filter) ([]models.TreeNode, error) {
	var entries []repotree.Entry

	err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == rootDir {
				return err
			}
			logrus.Warnf("Skipping '%s': %v", p, err)
			return nil
		}
		if p == rootDir {
			return nil
		}
		rel, err := filepath.Rel(rootDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if filter.Skip(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		entries = append(entries, repotree.Entry{Path: rel, Dir: d.IsDir()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list directory '%s': %w", rootDir, err)
	}

	logrus.Debugf("Listed %d entries under '%s'", len(entries), rootDir)
	return repotree.Build(entries), nil
}

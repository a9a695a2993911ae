package engine

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const skippedModes = fs.ModeNamedPipe | fs.ModeSocket | fs.ModeDevice | fs.ModeCharDevice | fs.ModeIrregular

// walk scans every file under root whose base name passes the filter set.
// WalkDir visits entries in lexical order.
func (r *runner) walk(root string) error {
	// A symlinked root is followed; nested directory symlinks are not.
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		root += string(filepath.Separator)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return r.unreadable(path, err)
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !r.opts.Filters.Allow(name) {
			r.log.Debug("filtered", zap.String("path", path))
			return nil
		}
		mode := d.Type()
		if mode&skippedModes != 0 {
			r.log.Debug("skipped special file", zap.String("path", path), zap.Stringer("mode", mode))
			return nil
		}
		if mode&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				r.log.Debug("skipped directory symlink", zap.String("path", path))
				return nil
			}
		}
		return r.scanFile(path)
	})
}

package bench

import (
	"os"
	"sort"

	"github.com/sparced/benchviz/pkg/errors"
)

// UtilsDir is the suite subdirectory holding shared tooling.
const UtilsDir = "benchmark_utils"

// Discover returns the names of the benchmark directories under root,
// sorted. The utils directory and plain files are skipped.
func Discover(root, utilsDir string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "benchmark directory not found: %s", root)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read benchmark directory")
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == utilsDir {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

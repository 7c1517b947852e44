package file

import (
	"github.com/spf13/afero"
)

// Exists returns true if the given path exists and is a regular file.
func Exists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

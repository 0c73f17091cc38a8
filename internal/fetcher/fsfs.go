package fetcher

import (
	"errors"
	"io/fs"
)

func readFS(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, errors.New("filesystem is not configured")
	}
	return fs.ReadFile(fsys, name)
}

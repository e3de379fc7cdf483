// Package resolve turns user-supplied paths into files the header decoder
// can open.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrPathInvalid is wrapped by every precondition failure.
var ErrPathInvalid = errors.New("invalid path")

// PathError describes why a path cannot be checked.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrPathInvalid, e.Err}
	}
	return []error{ErrPathInvalid}
}

// Path resolves one level of symlink and checks that the target is an
// existing regular file. Relative link targets are taken relative to the
// directory holding the link.
func Path(p string) (string, error) {
	st, err := os.Lstat(p)
	if err != nil {
		return "", &PathError{Path: p, Reason: "does not exist", Err: err}
	}

	target := p
	if st.Mode()&fs.ModeSymlink != 0 {
		link, err := os.Readlink(p)
		if err != nil {
			return "", &PathError{Path: p, Reason: "unreadable symlink", Err: err}
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(p), link)
		}
		target = link
	}

	st, err = os.Stat(target)
	if err != nil {
		return "", &PathError{Path: p, Reason: "target does not exist", Err: err}
	}
	if !st.Mode().IsRegular() {
		return "", &PathError{Path: p, Reason: "not a regular file"}
	}
	return target, nil
}

// Discover lists candidate model files in dir, sorted. Hidden entries are
// skipped. Subdirectories are only walked when recursive is set.
func Discover(dir string, recursive bool) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("models directory is empty")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("models path is not a directory: %s", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() || d.Type()&fs.ModeSymlink != 0 {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

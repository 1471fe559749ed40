// File: fifo/node.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fifo

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-fifo/api"
)

// CreateNode creates a FIFO at path with the octal permission mode. It
// reports false without touching anything when path already exists, unless
// failIfExists is set, in which case it fails with api.ErrAlreadyExists.
// The mode is applied with chmod after creation so the umask does not
// narrow it.
func CreateNode(path, mode string, failIfExists bool) (bool, error) {
	perm, err := ParseMode(mode)
	if err != nil {
		return false, err
	}
	if _, err := os.Lstat(path); err == nil {
		if failIfExists {
			return false, api.NewError(api.ErrCodeAlreadyExists, "fifo file already exists").
				WithContext("path", path)
		}
		return false, nil
	}
	if err := mkfifo(path, perm); err != nil {
		return false, err
	}
	return true, nil
}

// IsFifo reports whether path is a FIFO. Stat failures report false.
func IsFifo(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeNamedPipe != 0
}

func mkfifo(path string, perm os.FileMode) error {
	if err := unix.Mkfifo(path, 0o600); err != nil {
		return api.NewError(api.ErrCodeCreateFailed, "failed to create fifo file").
			Wrap(err).WithContext("path", path)
	}
	if err := os.Chmod(path, perm); err != nil {
		_ = os.Remove(path)
		return api.NewError(api.ErrCodeCreateFailed, "failed to set fifo mode").
			Wrap(err).WithContext("path", path).WithContext("mode", perm.String())
	}
	return nil
}

// Ensure creates the FIFO at path unless one is already there. An existing
// non-FIFO path fails with api.ErrCreateFailed.
func Ensure(path, mode string) error {
	if IsFifo(path) {
		return nil
	}
	perm, err := ParseMode(mode)
	if err != nil {
		return err
	}
	return mkfifo(path, perm)
}

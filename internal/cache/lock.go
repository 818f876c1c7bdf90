//go:build !windows

package cache

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// DirLock is an advisory, process-wide exclusive lock over a cache
// directory. Nothing in this package takes it: the maintenance operations
// (Sweep, Clear) and extraction all run without it — per §5, the cache relies
// on atomic rename for write safety and does not hold in-process locks
// across I/O.
type DirLock struct {
	file *os.File
}

// Lock acquires an exclusive flock on a ".lock" file inside dir, blocking
// until available.
func Lock(dir string) (*DirLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.WrapError(domain.KindIO, err, "create cache directory %s", dir)
	}
	path := filepath.Join(dir, ".lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, domain.WrapError(domain.KindIO, err, "open lock file %s", path)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, domain.WrapError(domain.KindCache, err, "acquire lock on %s", path)
	}
	return &DirLock{file: f}, nil
}

// Unlock releases the lock and closes the underlying file.
func (l *DirLock) Unlock() error {
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		l.file.Close()
		return domain.WrapError(domain.KindCache, err, "release lock")
	}
	return l.file.Close()
}

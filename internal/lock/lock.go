// Package lock provides the advisory file lock that serializes deploys.
//
// Probing a port and recording it in the registry are not atomic, so two
// concurrent deploy invocations could assign the same port. The deploy
// flow holds this lock for the full probe-ports-then-write-record
// sequence. The lock is advisory: it only protects invocations of this
// tool against each other, which is the only concurrency the toolkit has.
package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// FileLock is an exclusive flock on a well-known path.
type FileLock struct {
	path string
	file *os.File
}

// Acquire takes the exclusive lock, blocking until it is available.
func Acquire(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return &FileLock{path: path, file: f}, nil
}

// TryAcquire takes the lock without blocking. It returns (nil, nil) when
// the lock is held elsewhere.
func TryAcquire(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return &FileLock{path: path, file: f}, nil
}

// Release drops the lock. The lock file itself is left in place.
func (l *FileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}

	err := l.file.Close()
	l.file = nil
	return err
}

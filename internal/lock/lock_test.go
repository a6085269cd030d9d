package lock

import (
	"path/filepath"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.lock")

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	// Lock must be reacquirable after release.
	l2, err := Acquire(path)
	if err != nil {
		t.Fatalf("reacquire failed: %v", err)
	}
	if err := l2.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestTryAcquire_HeldLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.lock")

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer l.Release()

	// flock is per file description, so a second open descriptor in the
	// same process still observes the lock as held.
	l2, err := TryAcquire(path)
	if err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	if l2 != nil {
		_ = l2.Release()
		t.Error("TryAcquire should return nil while the lock is held")
	}
}

func TestTryAcquire_FreeLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.lock")

	l, err := TryAcquire(path)
	if err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	if l == nil {
		t.Fatal("TryAcquire should succeed on a free lock")
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestRelease_Nil(t *testing.T) {
	var l *FileLock
	if err := l.Release(); err != nil {
		t.Errorf("Release on nil lock should be a no-op, got: %v", err)
	}
}

func TestAcquire_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "deploy.lock")

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

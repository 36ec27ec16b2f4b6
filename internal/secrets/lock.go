package secrets

import (
	"fmt"
	"sync"

	"github.com/gofrs/flock"

	kerrors "github.com/devforge/devforge/internal/errors"
)

var (
	pathLocksMu sync.Mutex
	pathLocks   = map[string]*sync.RWMutex{}
)

// pathLock returns the mutex shared by every Store open on path.
func pathLock(path string) *sync.RWMutex {
	pathLocksMu.Lock()
	defer pathLocksMu.Unlock()

	mu, ok := pathLocks[path]
	if !ok {
		mu = &sync.RWMutex{}
		pathLocks[path] = mu
	}
	return mu
}

// lockForWrite takes the exclusive in-process and cross-process locks for
// the store. The returned func releases both.
func (s *Store) lockForWrite() (func(), error) {
	mu := pathLock(s.path)
	mu.Lock()

	fileLock := flock.New(s.lockPath())
	if err := fileLock.Lock(); err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("%w: failed to lock %s: %w", kerrors.ErrStoreIO, s.lockPath(), err)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			s.log.Debugf("Failed to release store lock: %v", err)
		}
		mu.Unlock()
	}, nil
}

// lockForRead takes the shared locks. Reads are safe without the file lock
// because writers rename complete files into place, so a lock file that
// cannot be created (read-only checkout) only costs cross-process ordering.
func (s *Store) lockForRead() func() {
	mu := pathLock(s.path)
	mu.RLock()

	fileLock := flock.New(s.lockPath())
	if err := fileLock.RLock(); err != nil {
		s.log.Debugf("Reading store without file lock: %v", err)
		return mu.RUnlock
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			s.log.Debugf("Failed to release store lock: %v", err)
		}
		mu.RUnlock()
	}
}
